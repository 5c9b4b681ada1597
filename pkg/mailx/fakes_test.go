package mailx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Abraxas-365/mailer/pkg/kernel"
)

type fakeTransport struct {
	settings    TransportSettings
	verifyErr   error
	sendErrs    map[string]error
	verifyCalls int
	sent        []Envelope
	factory     *fakeFactory
}

func (t *fakeTransport) Verify(ctx context.Context) error {
	t.verifyCalls++
	return t.verifyErr
}

func (t *fakeTransport) Send(ctx context.Context, env Envelope) (string, error) {
	for _, to := range env.To {
		if err, ok := t.sendErrs[to]; ok {
			return "", err
		}
	}
	t.sent = append(t.sent, env)
	return fmt.Sprintf("<%d@test.local>", t.factory.nextID()), nil
}

// fakeFactory records every transport it builds. Verify results are keyed by
// security mode so fallback scenarios can be expressed per mode.
type fakeFactory struct {
	mu         sync.Mutex
	built      []*fakeTransport
	verifyErrs map[SecurityMode]error
	sendErrs   map[string]error
	newErr     error
	ids        int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		verifyErrs: map[SecurityMode]error{},
		sendErrs:   map[string]error{},
	}
}

func (f *fakeFactory) New(settings TransportSettings) (Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.newErr != nil {
		return nil, f.newErr
	}
	t := &fakeTransport{
		settings:  settings,
		verifyErr: f.verifyErrs[settings.Mode],
		sendErrs:  f.sendErrs,
		factory:   f,
	}
	f.built = append(f.built, t)
	return t, nil
}

func (f *fakeFactory) nextID() int {
	f.ids++
	return f.ids
}

func (f *fakeFactory) totalVerifyCalls() int {
	n := 0
	for _, t := range f.built {
		n += t.verifyCalls
	}
	return n
}

type memFinder struct {
	records map[kernel.UserID]*UserSettings
	err     error
	calls   int
}

func (m *memFinder) FindMailSettings(ctx context.Context, userID kernel.UserID) (*UserSettings, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.records[userID], nil
}

var (
	errWrongVersion = &TransportError{Class: ClassTLSNegotiation, Err: errors.New("tls: first record does not look like a TLS handshake")}
	errBadAuth      = &TransportError{Class: ClassAuthentication, Err: errors.New("535 5.7.8 authentication failed")}
	errMailbox      = &TransportError{Class: ClassDelivery, Err: errors.New("550 mailbox unavailable")}
)

var testDefaults = Defaults{
	Host:     "smtp.default.test",
	Port:     465,
	Username: "noreply@default.test",
	Password: "default-secret",
}
