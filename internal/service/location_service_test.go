package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"trekking_club/internal/sms"

	"github.com/stretchr/testify/assert"
)

// fakeSender records dispatched messages and can be told to fail
type fakeSender struct {
	sent []struct{ number, message string }
	err  error
}

func (f *fakeSender) Send(_ context.Context, number, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct{ number, message string }{number, message})
	return nil
}

const testBaseURL = "http://localhost:3000"

func seedUser(t *testing.T, repo *fakeUserRepo) int {
	t.Helper()
	svc := newAuthService(repo)
	user, err := svc.Signup(context.Background(), "alice", "a@x.com", "pw1", "pw1", "+1555")
	assert.NoError(t, err)
	return user.ID
}

func TestLocationService_UpdateThenLast(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := NewLocationService(repo, sender, testBaseURL)
	id := seedUser(t, repo)

	links, err := svc.UpdateLocation(context.Background(), id, 12.34, 56.78, false)
	assert.NoError(t, err)
	assert.NotNil(t, links)

	lat, lon, err := svc.LastLocation(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, 12.34, lat)
	assert.Equal(t, 56.78, lon)

	// No broadcast without the flag
	assert.Empty(t, sender.sent)
}

func TestLocationService_Links(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewLocationService(repo, &fakeSender{}, testBaseURL)
	id := seedUser(t, repo)

	links, err := svc.UpdateLocation(context.Background(), id, 10.5, 20.25, false)

	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/track/1", links.LivePage)
	assert.Equal(t, "https://www.google.com/maps?q=10.5,20.25", links.GoogleMaps)
	assert.Contains(t, links.GoogleMaps, "10.5,20.25")
}

func TestLocationService_UpdateLocation_NonFinite(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewLocationService(repo, &fakeSender{}, testBaseURL)
	id := seedUser(t, repo)

	_, err := svc.UpdateLocation(context.Background(), id, 1.0, 2.0, false)
	assert.NoError(t, err)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.UpdateLocation(context.Background(), id, bad, 2.0, false)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
		_, err = svc.UpdateLocation(context.Background(), id, 1.0, bad, false)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	}

	// Prior coordinates unchanged
	lat, lon, err := svc.LastLocation(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, lat)
	assert.Equal(t, 2.0, lon)
}

func TestLocationService_UpdateLocation_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewLocationService(repo, &fakeSender{}, testBaseURL)

	_, err := svc.UpdateLocation(context.Background(), 99, 1.0, 2.0, false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLocationService_LastLocation_NoneRecorded(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewLocationService(repo, &fakeSender{}, testBaseURL)
	id := seedUser(t, repo)

	_, _, err := svc.LastLocation(context.Background(), id)
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestLocationService_LastLocation_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewLocationService(repo, &fakeSender{}, testBaseURL)

	_, _, err := svc.LastLocation(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestLocationService_Broadcast(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := NewLocationService(repo, sender, testBaseURL)
	id := seedUser(t, repo)

	links, err := svc.UpdateLocation(context.Background(), id, 12.34, 56.78, true)

	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, "+1555", sender.sent[0].number)
	assert.Contains(t, sender.sent[0].message, links.GoogleMaps)
	assert.Contains(t, sender.sent[0].message, links.LivePage)
}

func TestLocationService_Broadcast_NotDeduplicated(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := NewLocationService(repo, sender, testBaseURL)
	id := seedUser(t, repo)

	// Fires on every flagged request, same coordinates or not.
	for i := 0; i < 3; i++ {
		_, err := svc.UpdateLocation(context.Background(), id, 12.34, 56.78, true)
		assert.NoError(t, err)
	}
	assert.Len(t, sender.sent, 3)
}

func TestLocationService_Broadcast_GatewayFailure(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{err: &sms.GatewayError{StatusCode: 402, Body: "insufficient balance"}}
	svc := NewLocationService(repo, sender, testBaseURL)
	id := seedUser(t, repo)

	links, err := svc.UpdateLocation(context.Background(), id, 12.34, 56.78, true)

	// The failure is reported but the update stands and the links are usable.
	var gwErr *sms.GatewayError
	assert.ErrorAs(t, err, &gwErr)
	assert.NotNil(t, links)

	lat, lon, err := svc.LastLocation(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, 12.34, lat)
	assert.Equal(t, 56.78, lon)
}

func TestLocationService_SendSOS(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{}
	svc := NewLocationService(repo, sender, testBaseURL)
	id := seedUser(t, repo)

	err := svc.SendSOS(context.Background(), id)

	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, "+1555", sender.sent[0].number)
	assert.Contains(t, sender.sent[0].message, "HELP I AM IN TROUBLE")
}

func TestLocationService_SendSOS_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &fakeSender{err: errors.New("should never be called")}
	svc := NewLocationService(repo, sender, testBaseURL)

	err := svc.SendSOS(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
	// No outbound call was attempted
	assert.Empty(t, sender.sent)
}
