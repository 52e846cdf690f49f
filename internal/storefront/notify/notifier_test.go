package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderOrder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(Warning, "first")
	r.Notify(Error, "second")

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, Notification{Variant: Warning, Message: "first"}, all[0])

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "second", last.Message)

	r.Reset()
	assert.Empty(t, r.All())
}

func TestMultiFansOut(t *testing.T) {
	var a, b Recorder
	var seen []Variant
	m := Multi{&a, nil, &b, Func(func(v Variant, _ string) { seen = append(seen, v) })}

	m.Notify(Success, "ok")

	assert.Len(t, a.All(), 1)
	assert.Len(t, b.All(), 1)
	assert.Equal(t, []Variant{Success}, seen)
}
