/*
Package handler provides the HTTP handlers and routing for the collaboration server.

This file contains the WebSocket handshake handler: rate limiting, credential
verification, connection upgrade, and client lifecycle startup.
*/
package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"vibecode/internal/app/collab"
	"vibecode/internal/app/user"
	"vibecode/internal/pkg/auth/jwt"
	"vibecode/internal/pkg/errs"
	"vibecode/internal/pkg/limiter"
	"vibecode/internal/pkg/logx"
	"vibecode/internal/pkg/resp"
)

// handshakeToken pulls the credential from the request: the token query
// parameter first, then an Authorization bearer header.
func handshakeToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// HandleCollabSocket processes WebSocket connection requests. The credential
// is verified before the upgrade: a missing or invalid token fails the
// handshake with 401 and no connection is ever registered.
func HandleCollabSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		token := handshakeToken(r)
		if token == "" {
			logx.Warn("WebSocket connection rejected: missing credential")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		payload, err := jwt.ParseToken(token, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket connection rejected: invalid credential", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		identity := user.Identity{
			ID:    payload.ID,
			Email: payload.Email,
			Name:  payload.Name,
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := collab.NewClient(deps.Registry, conn, identity)

		deps.Registry.Register(client)

		go client.WritePump()

		logx.Info("WebSocket connection established",
			"connection_id", client.ID,
			"user_id", identity.ID,
		)

		client.ReadPump()
	}
}
