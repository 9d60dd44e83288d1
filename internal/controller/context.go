package controller

import "context"

type contextKey int

const (
	clientIdCtxKey contextKey = iota
)

func setClientIdToCtx(ctx context.Context, clientId string) context.Context {
	return context.WithValue(ctx, clientIdCtxKey, clientId)
}

func (c Controller) getClientIdFromCtx(ctx context.Context) string {
	clientId, ok := ctx.Value(clientIdCtxKey).(string)
	if !ok {
		return ""
	}

	return clientId
}
