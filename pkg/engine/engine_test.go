package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/evotrack/pkg/config"
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/source"
	"github.com/lintang-b-s/evotrack/pkg/trackerror"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(src source.Config) *config.Config {
	return &config.Config{
		ReferenceSpeedKnots: 10,
		StartOffsetLat:      0.1,
		SegmentError:        "total",
		Weights:             trackerror.DefaultWeights(),
		Source:              src,
	}
}

func TestNewEngineSynthetic(t *testing.T) {
	cfg := testConfig(source.Config{
		Kind:             source.SYNTHETIC,
		ReferenceStart:   "2000-01-03T00:00:00Z",
		NormalizeTime:    true,
		SyntheticVessels: 2,
		SyntheticNoiseKm: 2,
		Seed:             5,
	})
	core, logs := observer.New(zap.InfoLevel)
	e, err := NewEngine(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)

	reading := logs.FilterMessage("Reading training positions").All()
	require.Len(t, reading, 1)
	assert.Equal(t, "synthetic", reading[0].ContextMap()["source"])

	ctx := e.GetEvaluator().Context()
	assert.Equal(t, 10, ctx.NumTargets())
	first := e.GetTrainingSet().Targets[0]
	assert.InDelta(t, first.Lat()+0.1, ctx.Start().Lat(), 1e-12)
	assert.Equal(t, first.Lon(), ctx.Start().Lon())
}

func TestNewEngineDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ais.db")
	db, err := source.OpenDBSource(path, zap.NewNop())
	require.NoError(t, err)
	track, err := datastructure.NewTrack("1", []datastructure.Position{
		datastructure.NewPosition(geo.NewPoint(31, -12), 100),
		datastructure.NewPosition(geo.NewPoint(32, -11), 3700),
	})
	require.NoError(t, err)
	require.NoError(t, db.InsertTracks(context.Background(), track))
	require.NoError(t, db.Close())

	cfg := testConfig(source.Config{Kind: source.DATABASE, DBPath: path, ReferenceStart: "2000-01-03T00:00:00Z"})
	e, err := NewEngine(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, e.GetEvaluator().Context().NumTargets())
}

func TestNewEngineNoTargets(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, source.WriteCSV(empty))

	cfg := testConfig(source.Config{Kind: source.FILE, FilePath: empty, ReferenceStart: "2000-01-03T00:00:00Z"})
	_, err := NewEngine(context.Background(), cfg, zap.NewNop())
	assert.True(t, errors.Is(err, util.ErrData))
}
