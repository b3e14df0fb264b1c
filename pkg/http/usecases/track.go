package usecases

import (
	"errors"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/fitness"
	"github.com/lintang-b-s/evotrack/pkg/trackerror"
	"github.com/lintang-b-s/evotrack/pkg/util"
	"go.uber.org/zap"
)

type evaluation struct {
	fitness float64
	te      *trackerror.TrackError
}

// TrackService. read-only view on the fitness function for export/visualization clients
type TrackService struct {
	log       *zap.Logger
	evaluator Evaluator
	cache     *lru.Cache[string, evaluation]
}

func NewTrackService(log *zap.Logger, evaluator Evaluator, cacheSize int) (*TrackService, error) {
	cache, err := lru.New[string, evaluation](cacheSize)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "track service cache of size %d", cacheSize)
	}
	return &TrackService{
		log:       log,
		evaluator: evaluator,
		cache:     cache,
	}, nil
}

func (ts *TrackService) ReconstructTrack(genome fitness.Genome) (*datastructure.Track, error) {
	track, err := ts.evaluator.ReconstructTrack(genome)
	if err != nil {
		return nil, ts.wrap(err, "reconstruct track of %d genes", len(genome))
	}
	return track, nil
}

// Evaluate. fitness and error breakdown of genome. the context is frozen, so results are cached by genome
func (ts *TrackService) Evaluate(genome fitness.Genome) (float64, *trackerror.TrackError, error) {
	key, ok := genomeKey(genome)
	if ok {
		// github.com/hashicorp/golang-lru/v2 is thread-safe
		if ev, hit := ts.cache.Get(key); hit {
			return ev.fitness, ev.te, nil
		}
	}

	fit, te, err := ts.evaluator.Score(genome)
	if err != nil {
		return 0, nil, ts.wrap(err, "evaluate genome of %d genes", len(genome))
	}
	if ok {
		ts.cache.Add(key, evaluation{fitness: fit, te: te})
	}
	ts.log.Debug("genome evaluated", zap.Int("genes", len(genome)), zap.Float64("fitness", fit))
	return fit, te, nil
}

func (ts *TrackService) TrainingTargets() []datastructure.Position {
	return ts.evaluator.Context().Targets()
}

// wrap. malformed genomes are the client's fault, anything else is ours
func (ts *TrackService) wrap(err error, format string, a ...interface{}) error {
	var code error = util.ErrInternalServerError
	if errors.Is(err, util.ErrConfiguration) {
		code = util.ErrBadParamInput
	} else {
		ts.log.Error("track service failure", zap.Error(err))
	}
	return util.WrapErrorf(err, code, format, a...)
}

// genomeKey. exact text of every displacement; false when a gene is empty
func genomeKey(genome fitness.Genome) (string, bool) {
	var sb strings.Builder
	for _, g := range genome {
		d, ok := g.Displacement()
		if !ok {
			return "", false
		}
		sb.WriteString(strconv.FormatFloat(d.DLat(), 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(d.DLon(), 'g', -1, 64))
		sb.WriteByte(';')
	}
	return sb.String(), true
}
