package errors

var (
	// Domain errors returned by use cases
	ErrEmailTaken           = AlreadyExists("Email already exists")
	ErrUsernameTaken        = AlreadyExists("Username already exists")
	ErrUserNotFound         = NotFound("User not found")
	ErrInvalidCredentials   = Unauthorized("Invalid credentials")
	ErrUnauthorized         = Unauthorized("Unauthorized")
	ErrMissingFields        = InvalidArg("All fields are required")
	ErrCredentialsMissing   = InvalidArg("Email and password are required")
	ErrPasswordTooShort     = InvalidArg("Password must be at least 6 characters")
	ErrPasswordTooLong      = InvalidArg("Password must be at most 72 bytes")
	ErrParticipantRequired  = InvalidArg("Participant ID is required")
	ErrSelfConversation     = InvalidArg("Cannot start a conversation with yourself")
	ErrConversationMissing  = InvalidArg("Conversation ID is required")
	ErrConversationNotFound = NotFound("Conversation not found")
	ErrNotParticipant       = Forbidden("Not a participant in this conversation")
	ErrMessageRequired      = InvalidArg("Message text is required")
	ErrMessageTooLong       = InvalidArg("Message too long")
	ErrSubscriptionMissing  = InvalidArg("Subscription data is required")
	ErrStatusMissing        = InvalidArg("isOnline is required")
)

func ErrPersistence(cause error) error {
	return Wrap(CodeInternal, "persistence error", cause)
}

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "registration failed", cause)
}
