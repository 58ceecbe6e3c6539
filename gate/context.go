package gate

import "context"

type contextKey string

const (
	contextKeyRole   contextKey = "user_role"
	contextKeyDevice contextKey = "device_type"
)

func newContext(ctx context.Context, role string, device DeviceType) context.Context {
	ctx = context.WithValue(ctx, contextKeyRole, role)
	return context.WithValue(ctx, contextKeyDevice, device)
}

// RoleFromContext returns the role attached by the gate.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(contextKeyRole).(string)
	return role, ok
}

// DeviceFromContext returns the device class attached by the gate,
// defaulting to desktop.
func DeviceFromContext(ctx context.Context) DeviceType {
	if device, ok := ctx.Value(contextKeyDevice).(DeviceType); ok {
		return device
	}
	return DeviceDesktop
}
