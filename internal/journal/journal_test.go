package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tiaki/internal/testutil"
)

func openJournal(t *testing.T, clock Sequencer) *Journal {
	t.Helper()
	j, err := Open(clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t, nil)

	ev, err := j.Append(ctx, "s1", KindCouncil, map[string]string{"council": "waikato"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ev.Seq)

	_, err = j.Append(ctx, "s1", KindClassify, map[string]string{"location": "Raglan", "label": "Raglan ICMP"})
	require.NoError(t, err)
	_, err = j.Append(ctx, "s2", KindToggle, nil)
	require.NoError(t, err)
	_, err = j.Append(ctx, "s1", KindExport, nil)
	require.NoError(t, err)

	events, err := j.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, []int64{1, 2, 4}, []int64{events[0].Seq, events[1].Seq, events[2].Seq})
	assert.Equal(t, KindClassify, events[1].Kind)
	assert.Equal(t, "Raglan ICMP", events[1].Detail["label"])
	assert.Nil(t, events[2].Detail)
}

func TestListUnknownSession(t *testing.T) {
	events, err := openJournal(t, nil).List(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestJournalsAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := openJournal(t, nil)
	b := openJournal(t, nil)

	_, err := a.Append(ctx, "s", KindCancel, nil)
	require.NoError(t, err)

	events, err := b.List(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDeterministicSequence(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewDeterministicClockAt(10)

	script := func(j *Journal) []int64 {
		var seqs []int64
		for _, kind := range []string{KindCouncil, KindClassify, KindConfirm} {
			ev, err := j.Append(ctx, "s", kind, nil)
			require.NoError(t, err)
			seqs = append(seqs, ev.Seq)
		}
		return seqs
	}

	first := script(openJournal(t, clock))
	clock.Reset()
	second := script(openJournal(t, clock))

	assert.Equal(t, []int64{11, 12, 13}, first)
	assert.Equal(t, first, second)
}

func TestDuplicateSeqRejected(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewDeterministicClock()
	j := openJournal(t, clock)

	_, err := j.Append(ctx, "s", KindFigure, nil)
	require.NoError(t, err)

	clock.Reset()
	_, err = j.Append(ctx, "s", KindFigure, nil)
	assert.Error(t, err)
}

func TestCountByKind(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t, nil)
	for _, kind := range []string{KindExport, KindExport, KindSelfCheck} {
		_, err := j.Append(ctx, "s", kind, nil)
		require.NoError(t, err)
	}

	counts, err := j.CountByKind(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KindExport: 2, KindSelfCheck: 1}, counts)
}

func TestClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Next())
}
