package usecase

import "context"

// ExecuteHelloWorldInput is a command issued from the CLI channel.
type ExecuteHelloWorldInput struct {
	UserID  int64
	Token   string
	Command string
}

// HelloWorldOutput carries either the greeting or the reason it was refused.
type HelloWorldOutput struct {
	Message string
}

// DemoUsecase defines the role-gated hello-world operations.
type DemoUsecase interface {
	GetHelloWorld(ctx context.Context, userID int64) (*HelloWorldOutput, error)
	ExecuteHelloWorld(ctx context.Context, input ExecuteHelloWorldInput) (*HelloWorldOutput, error)
}
