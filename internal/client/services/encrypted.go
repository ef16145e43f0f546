package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/cryptox"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
)

func validEnvelope(env *cryptox.Envelope) bool {
	return env != nil && env.IV != "" && env.Data != ""
}

// readEncrypted loads and opens the envelope stored under key. Anything that
// prevents decryption yields fallback.
func readEncrypted[T any](ctx context.Context, rec *records.Store, log logging.Logger, key, userID string, fallback T) T {
	env := records.ReadJSON[*cryptox.Envelope](ctx, rec, key, nil, validEnvelope)
	if env == nil {
		return fallback
	}
	var v T
	if err := cryptox.DecryptInto(userID, env, &v); err != nil {
		log.Warn(ctx, "decrypting record failed, using default", "key", key, "error", err)
		return fallback
	}
	return v
}

func writeEncrypted(ctx context.Context, rec *records.Store, key, userID string, value any) error {
	env, err := cryptox.EncryptJSON(userID, value)
	if err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	return rec.WriteJSON(ctx, key, env)
}
