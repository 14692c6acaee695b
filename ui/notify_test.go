// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_IDsIncrease(t *testing.T) {
	n := NewNotifier(0, nil)
	defer n.Close()

	a := n.Add("one", KindInfo)
	b := n.Success("two")
	c := n.Error("three")

	assert.Less(t, a, b)
	assert.Less(t, b, c)

	list := n.List()
	require.Len(t, list, 3)
	assert.Equal(t, KindInfo, list[0].Kind)
	assert.Equal(t, KindSuccess, list[1].Kind)
	assert.Equal(t, KindError, list[2].Kind)
}

func TestNotifier_EmptyKindDefaultsToInfo(t *testing.T) {
	n := NewNotifier(0, nil)
	defer n.Close()

	n.Add("hello", "")
	assert.Equal(t, KindInfo, n.List()[0].Kind)
}

func TestNotifier_Remove(t *testing.T) {
	n := NewNotifier(0, nil)
	defer n.Close()

	a := n.Add("one", KindInfo)
	b := n.Add("two", KindInfo)
	n.Remove(a)
	n.Remove(999)

	list := n.List()
	require.Len(t, list, 1)
	assert.Equal(t, b, list[0].ID)
}

func TestNotifier_AutoDismiss(t *testing.T) {
	n := NewNotifier(20*time.Millisecond, nil)
	defer n.Close()

	n.Success("gone soon")
	require.Len(t, n.List(), 1)

	assert.Eventually(t, func() bool { return len(n.List()) == 0 },
		time.Second, 5*time.Millisecond)
}

func TestNotifier_Sink(t *testing.T) {
	var seen []Notification
	n := NewNotifier(0, func(item Notification) { seen = append(seen, item) })
	defer n.Close()

	n.Error("boom")
	require.Len(t, seen, 1)
	assert.Equal(t, "boom", seen[0].Message)
	assert.Equal(t, KindError, seen[0].Kind)
}

func TestNotifier_CloseDropsEverything(t *testing.T) {
	n := NewNotifier(time.Hour, nil)
	n.Add("one", KindInfo)
	n.Close()

	assert.Empty(t, n.List())
	assert.Zero(t, n.Add("after close", KindInfo))
}
