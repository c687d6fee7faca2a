package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSyncSession_DebounceCoalescesBursts(t *testing.T) {
	var reloads atomic.Int32
	session := NewSyncSession(func(context.Context) error {
		reloads.Add(1)
		return nil
	}, 20*time.Millisecond)
	defer session.Stop()

	for i := 0; i < 5; i++ {
		session.NotifyChanged()
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), reloads.Load(), "a burst collapses into one reload")
}

func TestSyncSession_SaveGuardDefersReload(t *testing.T) {
	var reloads atomic.Int32
	session := NewSyncSession(func(context.Context) error {
		reloads.Add(1)
		return nil
	}, 10*time.Millisecond)
	defer session.Stop()

	session.BeginSave()
	session.NotifyChanged()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(0), reloads.Load(), "no reload while a save is in flight")

	session.EndSave()
	require.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSyncSession_NestedSaves(t *testing.T) {
	var reloads atomic.Int32
	session := NewSyncSession(func(context.Context) error {
		reloads.Add(1)
		return nil
	}, 10*time.Millisecond)
	defer session.Stop()

	session.BeginSave()
	session.BeginSave()
	session.NotifyChanged()
	session.EndSave()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(0), reloads.Load(), "the inner span closing must not release the reload")

	session.EndSave()
	require.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSyncSession_ResyncSchedulesReloads(t *testing.T) {
	var reloads atomic.Int32
	session := NewSyncSession(func(context.Context) error {
		reloads.Add(1)
		return nil
	}, 10*time.Millisecond)
	require.NoError(t, session.StartResync(time.Second))
	defer session.Stop()

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestSyncSession_RejectsBadResyncInterval(t *testing.T) {
	session := NewSyncSession(func(context.Context) error { return nil }, 0)
	require.Error(t, session.StartResync(0))
}
