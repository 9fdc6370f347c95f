package handlers

import (
	"crypto/rand"
	"io"
	"time"

	"estimatebuilder/config"
	"estimatebuilder/services"
)

// Env holds what the handlers share: settings, the session store and the
// clock and randomness used for new estimates.
type Env struct {
	Settings *config.Settings
	Sessions *SessionStore
	Now      func() time.Time
	Rand     io.Reader
}

// NewEnv returns an Env backed by the wall clock and crypto/rand.
func NewEnv(settings *config.Settings) *Env {
	return &Env{
		Settings: settings,
		Sessions: NewSessionStore(time.Now),
		Now:      time.Now,
		Rand:     rand.Reader,
	}
}

// newEstimate starts an empty estimate in the configured default currency.
func (env *Env) newEstimate() (*services.Estimate, error) {
	est, err := services.NewEstimate(env.Now(), env.Rand)
	if err != nil {
		return nil, err
	}
	est.Currency = env.Settings.Currency()
	return est, nil
}
