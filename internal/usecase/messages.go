package usecase

// Success and refusal messages returned in soft results. Failure messages that
// correspond to a domain error kind come from that error's Message instead.
const (
	MsgUserRegistered = "User registered successfully."
	MsgProfileUpdated = "User profile updated successfully."
	MsgUserDeleted    = "User successfully deleted."

	MsgAccessDenied        = "Access denied"
	MsgCommandAuthFailed   = "Authentication failed. User does not exist or token is invalid."
	MsgInvalidCommand      = "Invalid command. Expected 'hello-world'."
	MsgCommandNotPermitted = "Authorization failed. User is not permitted to execute this command."
)
