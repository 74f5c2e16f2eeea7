package notify

import "context"

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string, string, any) error { return nil }
