package seg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_New_RoundsCapacityToPages(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, s.PageSize(), s.Cap())
	require.Zero(t, s.Size())
	require.Empty(t, s.Bytes())
}

func Test_New_RejectsBadCapacity(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = New(-4096)
	require.ErrorIs(t, err, ErrBadSize)
}

func Test_Sbrk_AdvancesHighWatermark(t *testing.T) {
	s, err := New(4 * hostPage(t))
	require.NoError(t, err)
	defer s.Close()

	page := s.PageSize()

	off, err := s.Sbrk(page)
	require.NoError(t, err)
	require.Zero(t, off)
	require.Equal(t, page, s.Size())

	off, err = s.Sbrk(page)
	require.NoError(t, err)
	require.Equal(t, page, off)
	require.Equal(t, 2*page, s.Size())
	require.Len(t, s.Bytes(), 2*page)
}

func Test_Sbrk_FailsWhenExhausted(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)
	defer s.Close()

	page := s.PageSize()
	_, err = s.Sbrk(page)
	require.NoError(t, err)

	// Reservation is a single page; a second page must fail and leave
	// the watermark where it was.
	_, err = s.Sbrk(page)
	require.ErrorIs(t, err, ErrSegmentFull)
	require.Equal(t, page, s.Size())

	_, err = s.Sbrk(0)
	require.ErrorIs(t, err, ErrBadSize)
}

func Test_Sbrk_SlicesStayValidAcrossGrowth(t *testing.T) {
	s, err := New(2 * hostPage(t))
	require.NoError(t, err)
	defer s.Close()

	page := s.PageSize()
	_, err = s.Sbrk(page)
	require.NoError(t, err)

	early := s.Bytes()
	early[0] = 0xAB

	_, err = s.Sbrk(page)
	require.NoError(t, err)

	// The earlier slice still views the same backing array.
	require.Equal(t, byte(0xAB), s.Bytes()[0])
	early[1] = 0xCD
	require.Equal(t, byte(0xCD), s.Bytes()[1])
}

func Test_Reset_RollsBackToEmpty(t *testing.T) {
	s, err := New(2 * hostPage(t))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Sbrk(s.PageSize())
	require.NoError(t, err)
	require.NotZero(t, s.Size())

	s.Reset()
	require.Zero(t, s.Size())
	require.Empty(t, s.Bytes())

	// The segment is reusable after a reset.
	off, err := s.Sbrk(s.PageSize())
	require.NoError(t, err)
	require.Zero(t, off)
}

func Test_Close_Idempotent(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

// hostPage returns the platform page size so capacity arguments in
// tests scale with it.
func hostPage(t *testing.T) int {
	t.Helper()
	return pageSize()
}
