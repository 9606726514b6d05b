package service

// InviteCodeGenerator mints human-shareable invite codes in the fixed
// INVITE-XXXX-XXXX shape, drawn from an alphabet without visually
// confusable characters.
type InviteCodeGenerator interface {
	// Generate returns a fresh uppercase invite code.
	Generate() (string, error)
}
