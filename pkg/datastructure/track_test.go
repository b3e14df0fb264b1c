package datastructure

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpeed = 10.0 // knots

func TestReconstructScenario(t *testing.T) {
	t0 := NewTimestamp(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC))
	start := NewPosition(geo.NewPoint(0, 0), t0)
	steps := NewDisplacementSequence(NewDisplacement(1, 0), NewDisplacement(0, 1))

	track, err := Reconstruct(start, steps, testSpeed)
	require.NoError(t, err)
	require.Equal(t, 3, track.Len())

	d1 := int64(geo.DistanceInMiles(geo.NewPoint(0, 0), geo.NewPoint(1, 0)) / testSpeed * 3600)
	d2 := int64(geo.DistanceInMiles(geo.NewPoint(1, 0), geo.NewPoint(1, 1)) / testSpeed * 3600)
	// 60 NM at 10 knots, truncated to whole seconds
	assert.InDelta(t, 21600, d1, 1)

	assert.Equal(t, start, track.At(0))
	assert.Equal(t, geo.NewPoint(1, 0), track.At(1).Point())
	assert.Equal(t, t0.AddSeconds(d1), track.At(1).Timestamp())
	assert.Equal(t, geo.NewPoint(1, 1), track.At(2).Point())
	assert.Equal(t, t0.AddSeconds(d1+d2), track.At(2).Timestamp())
	assert.Equal(t, 1, track.At(1).Index())
	assert.Equal(t, 2, track.At(2).Index())
	assert.Equal(t, ReconstructedVesselID, track.VesselID())
}

func TestReconstructProperties(t *testing.T) {
	testCases := []struct {
		name  string
		steps []Displacement
	}{
		{name: "empty", steps: []Displacement{}},
		{name: "single", steps: []Displacement{NewDisplacement(0.3, -0.2)}},
		{name: "zig zag", steps: []Displacement{NewDisplacement(1, 1), NewDisplacement(-1, 1),
			NewDisplacement(1, 1), NewDisplacement(-1, 1)}},
		{name: "with zero step", steps: []Displacement{NewDisplacement(0.5, 0), NewDisplacement(0, 0),
			NewDisplacement(0, 0.5)}},
		{name: "polar steps", steps: []Displacement{NewPolarDisplacement(1, 45), NewPolarDisplacement(2, 200)}},
	}

	start := NewPosition(geo.NewPoint(-34, 18), Timestamp(946857600))
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			track, err := Reconstruct(start, NewDisplacementSequence(tt.steps...), testSpeed)
			require.NoError(t, err)

			assert.Equal(t, len(tt.steps)+1, track.Len())
			assert.Equal(t, start, track.First())
			for i := 1; i < track.Len(); i++ {
				assert.False(t, track.At(i).Timestamp().Before(track.At(i-1).Timestamp()),
					"timestamps must not decrease at %d", i)
			}
		})
	}
}

func TestReconstructZeroStep(t *testing.T) {
	start := NewPosition(geo.NewPoint(10, 10), Timestamp(1000))
	track, err := Reconstruct(start, NewDisplacementSequence(NewDisplacement(0, 0)), testSpeed)
	require.NoError(t, err)

	assert.Equal(t, start.Point(), track.Last().Point())
	assert.Equal(t, start.Timestamp(), track.Last().Timestamp())
}

func TestReconstructNilSteps(t *testing.T) {
	start := NewPosition(geo.NewPoint(10, 10), Timestamp(1000))
	track, err := Reconstruct(start, nil, testSpeed)
	require.NoError(t, err)
	assert.Equal(t, 1, track.Len())
	assert.Empty(t, track.Segments())
}

func TestReconstructInvalidInput(t *testing.T) {
	start := NewPosition(geo.NewPoint(0, 0), Timestamp(0))

	_, err := Reconstruct(start, NewDisplacementSequence(), 0)
	assert.True(t, errors.Is(err, util.ErrComputation))

	_, err = Reconstruct(start, NewDisplacementSequence(NewDisplacement(math.NaN(), 0)), testSpeed)
	assert.True(t, errors.Is(err, util.ErrComputation))
}

func TestComputeDisplacementsRoundTrip(t *testing.T) {
	start := NewPosition(geo.NewPoint(31, -12), Timestamp(100000))
	steps := NewDisplacementSequence(NewDisplacement(1, 1), NewDisplacement(-1, 1), NewDisplacement(-1, -1))

	track, err := Reconstruct(start, steps, testSpeed)
	require.NoError(t, err)

	again, err := Reconstruct(track.First(), track.ComputeDisplacements(), testSpeed)
	require.NoError(t, err)
	require.Equal(t, track.Len(), again.Len())
	for i := range track.Positions() {
		assert.InDelta(t, track.At(i).Lat(), again.At(i).Lat(), 1e-9)
		assert.InDelta(t, track.At(i).Lon(), again.At(i).Lon(), 1e-9)
	}
}

func TestNewTrackRejectsDecreasingTimestamps(t *testing.T) {
	_, err := NewTrack("211394200", []Position{
		NewPosition(geo.NewPoint(0, 0), Timestamp(10)),
		NewPosition(geo.NewPoint(0, 1), Timestamp(5)),
	})
	assert.True(t, errors.Is(err, util.ErrData))
}

func TestNormalizeTime(t *testing.T) {
	track, err := NewTrack("212720000", []Position{
		NewIndexedPosition(geo.NewPoint(0, 0), Timestamp(500), 0),
		NewIndexedPosition(geo.NewPoint(1, 0), Timestamp(900), 1),
		NewIndexedPosition(geo.NewPoint(2, 0), Timestamp(901), 2),
	})
	require.NoError(t, err)

	ref := NewTimestamp(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC))
	normalized, err := track.NormalizeTime(ref, testSpeed)
	require.NoError(t, err)

	leg1, err := StepDurationSeconds(geo.NewPoint(0, 0), geo.NewPoint(1, 0), testSpeed)
	require.NoError(t, err)
	leg2, err := StepDurationSeconds(geo.NewPoint(1, 0), geo.NewPoint(2, 0), testSpeed)
	require.NoError(t, err)
	assert.Equal(t, ref, normalized.At(0).Timestamp())
	assert.Equal(t, ref.AddSeconds(leg1), normalized.At(1).Timestamp())
	assert.Equal(t, ref.AddSeconds(leg1+leg2), normalized.At(2).Timestamp())
	assert.Equal(t, "212720000", normalized.VesselID())
	// the source track is untouched
	assert.Equal(t, Timestamp(900), track.At(1).Timestamp())
	assert.Equal(t, time.Duration(leg1+leg2)*time.Second, normalized.Duration())
	assert.InDelta(t, 120.0, normalized.LengthInMiles(), 1e-6)
}

func TestStepDurationOverflow(t *testing.T) {
	tests := []struct {
		name  string
		start Timestamp
		speed float64
	}{
		{"tiny speed", 0, 1e-20},
		{"subnormal speed", 0, 5e-324},
		{"running sum", Timestamp(math.MaxInt64 - 1000), 10},
	}
	steps := NewDisplacementSequence(NewDisplacement(1, 0), NewDisplacement(0, 1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := NewPosition(geo.NewPoint(0, 0), tt.start)
			_, err := Reconstruct(start, steps, tt.speed)
			assert.True(t, errors.Is(err, util.ErrComputation))

			track, err := NewTrack("1", []Position{start, NewPosition(geo.NewPoint(1, 1), tt.start)})
			require.NoError(t, err)
			_, err = track.NormalizeTime(tt.start, tt.speed)
			assert.True(t, errors.Is(err, util.ErrComputation))
		})
	}

	_, err := StepDurationSeconds(geo.NewPoint(0, 0), geo.NewPoint(1, 0), 1e-20)
	assert.True(t, errors.Is(err, util.ErrComputation))
	secs, err := StepDurationSeconds(geo.NewPoint(0, 0), geo.NewPoint(0, 0), 1e-20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), secs)
}

func TestMergeByTime(t *testing.T) {
	a, err := NewTrack("a", []Position{
		NewPosition(geo.NewPoint(0, 0), Timestamp(0)),
		NewPosition(geo.NewPoint(0, 2), Timestamp(20)),
	})
	require.NoError(t, err)
	b, err := NewTrack("b", []Position{
		NewPosition(geo.NewPoint(1, 0), Timestamp(10)),
		NewPosition(geo.NewPoint(1, 2), Timestamp(20)),
	})
	require.NoError(t, err)

	merged := MergeByTime(a, b)
	require.Len(t, merged, 4)
	assert.Equal(t, Timestamp(0), merged[0].Timestamp())
	assert.Equal(t, Timestamp(10), merged[1].Timestamp())
	// equal timestamps keep the order of the tracks
	assert.Equal(t, geo.NewPoint(0, 2), merged[2].Point())
	assert.Equal(t, geo.NewPoint(1, 2), merged[3].Point())
}

func TestDisplacementSequenceScale(t *testing.T) {
	ds := NewDisplacementSequence(NewDisplacement(1, -2), NewDisplacement(0.5, 0))
	scaled := ds.Scale(2)

	assert.Equal(t, NewDisplacement(2, -4), scaled.At(0))
	assert.Equal(t, NewDisplacement(1, 0), scaled.At(1))
	// original sequence untouched
	assert.Equal(t, NewDisplacement(1, -2), ds.At(0))
}

func TestPolarDisplacement(t *testing.T) {
	d := NewPolarDisplacement(2, 90)
	assert.InDelta(t, 0.0, d.DLat(), 1e-12)
	assert.InDelta(t, 2.0, d.DLon(), 1e-12)
	assert.InDelta(t, 2.0, d.Length(), 1e-12)
	assert.InDelta(t, 90.0, d.Bearing(), 1e-9)
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(100)
	assert.Equal(t, Timestamp(101), ts.Add(1900*time.Millisecond))
	assert.Equal(t, 5*time.Second, ts.AddSeconds(5).Sub(ts))
	assert.Equal(t, "1970-01-01 00:01:40", ts.String())
}
