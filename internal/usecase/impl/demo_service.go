package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "helloworld/internal/delivery/context"
	"helloworld/internal/domain/constants"
	"helloworld/internal/domain/entity"
	domainerrors "helloworld/internal/domain/errors"
	"helloworld/internal/domain/lifecycle"
	"helloworld/internal/domain/repository"
	"helloworld/internal/domain/service"
	"helloworld/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// demoService implements the DemoUsecase interface.
type demoService struct {
	interactionRepo repository.InteractionRepository
	guard           service.AuthGuard
	publisher       service.EventPublisher
	logger          *slog.Logger
}

// DemoServiceParams holds dependencies for DemoService, injected by Fx.
type DemoServiceParams struct {
	fx.In

	InteractionRepo repository.InteractionRepository
	Guard           service.AuthGuard
	Publisher       service.EventPublisher
	Logger          *slog.Logger
}

// NewDemoService is the constructor for demoService.
func NewDemoService(params DemoServiceParams) usecase.DemoUsecase {
	return &demoService{
		interactionRepo: params.InteractionRepo,
		guard:           params.Guard,
		publisher:       params.Publisher,
		logger:          params.Logger,
	}
}

func (srv *demoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// GetHelloWorld greets a caller identified by id alone. Only the User role is let through.
func (srv *demoService) GetHelloWorld(ctx context.Context, userID int64) (*usecase.HelloWorldOutput, error) {
	denied := &usecase.HelloWorldOutput{Message: usecase.MsgAccessDenied}

	user, err := srv.guard.Authorize(ctx, entity.OpGetHelloWorld, service.Credentials{UserID: userID}, 0)
	if err != nil {
		if _, ok := softFailure(err); ok {
			srv.log(ctx).Info("Hello world refused", slog.Int64("userID", userID), slog.Any("error", err))

			return denied, nil
		}

		return nil, errors.Wrap(err, "failed to authorize hello world")
	}

	if err := srv.record(ctx, user.ID, entity.ChannelAPI); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return denied, nil
		}

		return nil, err
	}

	return &usecase.HelloWorldOutput{Message: constants.HelloWorldContent}, nil
}

// ExecuteHelloWorld runs the hello-world command for a caller proving identity with id and token.
func (srv *demoService) ExecuteHelloWorld(ctx context.Context, input usecase.ExecuteHelloWorldInput) (*usecase.HelloWorldOutput, error) {
	user, err := srv.guard.Authorize(ctx, entity.OpExecuteHelloWorld, service.Credentials{
		UserID: input.UserID,
		Token:  input.Token,
	}, 0)

	notPermitted := false
	switch {
	case err == nil:
	case errors.Is(err, domainerrors.ErrUnauthorized):
		notPermitted = true
	case errors.Is(err, domainerrors.ErrUnauthenticated), errors.Is(err, domainerrors.ErrUserNotFound):
		srv.log(ctx).Info("Hello world command unauthenticated", slog.Int64("userID", input.UserID), slog.Any("error", err))

		return &usecase.HelloWorldOutput{Message: usecase.MsgCommandAuthFailed}, nil
	default:
		return nil, errors.Wrap(err, "failed to authorize hello world command")
	}

	if input.Command != constants.HelloWorldCommand {
		return &usecase.HelloWorldOutput{Message: usecase.MsgInvalidCommand}, nil
	}

	if notPermitted {
		return &usecase.HelloWorldOutput{Message: usecase.MsgCommandNotPermitted}, nil
	}

	if err := srv.record(ctx, user.ID, entity.ChannelCLI); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return &usecase.HelloWorldOutput{Message: usecase.MsgCommandAuthFailed}, nil
		}

		return nil, err
	}

	return &usecase.HelloWorldOutput{Message: constants.HelloWorldContent}, nil
}

// record stores the interaction and announces it. Publishing is best effort.
func (srv *demoService) record(ctx context.Context, userID int64, channel entity.Channel) error {
	interaction := &entity.Interaction{
		UserID:  userID,
		Channel: channel,
		Content: constants.HelloWorldContent,
	}
	if err := srv.interactionRepo.Create(ctx, interaction); err != nil {
		return errors.Wrap(err, "failed to record interaction")
	}

	event := &service.InteractionEvent{
		EventID:       uuid.NewString(),
		RequestID:     deliverycontext.RequestID(ctx),
		InteractionID: interaction.ID,
		UserID:        interaction.UserID,
		Channel:       string(interaction.Channel),
		Content:       interaction.Content,
		OccurredAt:    interaction.CreatedAt.UTC().Format(time.RFC3339),
	}

	// The request may finish before the publish does; keep its values but not its deadline.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	if err := srv.publisher.PublishInteractionEvent(publishCtx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish interaction event",
			slog.String("event_id", event.EventID),
			slog.Int64("interaction_id", interaction.ID),
			slog.Any("error", err),
		)
	}

	return nil
}
