package mailx

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/ptrx"
	"github.com/stretchr/testify/assert"
)

func TestResolverUsesDefaultsWithoutUser(t *testing.T) {
	finder := &memFinder{}
	r := NewResolver(finder, testDefaults)

	res := r.Resolve(context.Background(), "")
	assert.False(t, res.FromUserSettings)
	assert.Equal(t, testDefaults.Host, res.Config.Host)
	assert.Equal(t, testDefaults.Port, res.Config.Port)
	assert.Nil(t, res.Config.Secure)
	assert.Equal(t, testDefaults.Username, res.Sender())
	assert.Zero(t, finder.calls)
}

func TestResolverUsesUserSettings(t *testing.T) {
	finder := &memFinder{records: map[kernel.UserID]*UserSettings{
		"u1": {Host: "smtp.user.test", Port: 587, Username: "me@user.test", Password: "pw", Secure: ptrx.Bool(false)},
	}}
	r := NewResolver(finder, testDefaults)

	res := r.Resolve(context.Background(), "u1")
	assert.True(t, res.FromUserSettings)
	assert.Equal(t, "smtp.user.test", res.Config.Host)
	assert.Equal(t, 587, res.Config.Port)
	assert.Equal(t, ptrx.Bool(false), res.Config.Secure)
	assert.Equal(t, "me@user.test", res.Sender())
	assert.Equal(t, DefaultTimeouts(), res.Config.Timeouts)
}

func TestResolverFallsBackToDefaults(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		r := NewResolver(&memFinder{}, testDefaults)
		res := r.Resolve(context.Background(), "missing")
		assert.False(t, res.FromUserSettings)
		assert.Equal(t, testDefaults.Host, res.Config.Host)
	})

	t.Run("store failure", func(t *testing.T) {
		r := NewResolver(&memFinder{err: errors.New("disk on fire")}, testDefaults)
		res := r.Resolve(context.Background(), "u1")
		assert.False(t, res.FromUserSettings)
		assert.Equal(t, testDefaults.Host, res.Config.Host)
	})

	t.Run("no finder", func(t *testing.T) {
		r := NewResolver(nil, testDefaults)
		res := r.Resolve(context.Background(), "u1")
		assert.False(t, res.FromUserSettings)
	})
}
