package source

import (
	"slices"
	"time"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/spatialindex"
	"go.uber.org/zap"
)

/*
VoyageMiner. cuts voyages between a departure and an arrival area out of vessel tracks.

a voyage runs from the last position inside the departure box to the first following position inside
the arrival box. it is kept when its departure falls in the year period and it does not last longer
than maxVoyage. every vessel contributes at most one voyage.
*/
type VoyageMiner struct {
	departure  geo.Box
	arrival    geo.Box
	period     YearPeriod
	maxVoyage  time.Duration // 0: no limit
	maxVessels int           // 0: no limit
	log        *zap.Logger
}

func NewVoyageMiner(departure, arrival geo.Box, period YearPeriod, maxVoyage time.Duration, maxVessels int,
	log *zap.Logger) *VoyageMiner {
	if log == nil {
		log = zap.NewNop()
	}
	return &VoyageMiner{
		departure:  departure,
		arrival:    arrival,
		period:     period,
		maxVoyage:  maxVoyage,
		maxVessels: maxVessels,
		log:        log,
	}
}

func (m *VoyageMiner) Mine(tracks []*datastructure.Track) []*datastructure.Track {
	rt := spatialindex.NewRtree()
	rt.Build(tracks, m.log)

	if rt.Len() == 0 {
		m.log.Info("no positions to mine voyages from", zap.Int("tracks", len(tracks)))
		return []*datastructure.Track{}
	}

	departures := groupByTrack(rt.SearchBox(m.departure))
	arrivals := groupByTrack(rt.SearchBox(m.arrival))

	voyages := make([]*datastructure.Track, 0)
	for t, track := range tracks {
		if m.maxVessels > 0 && len(voyages) >= m.maxVessels {
			break
		}
		voyage := m.firstVoyage(track, departures[t], arrivals[t])
		if voyage == nil {
			continue
		}
		m.log.Info("voyage found", zap.String("mmsi", track.VesselID()), zap.Int("positions", voyage.Len()),
			zap.String("departure", voyage.First().Timestamp().String()),
			zap.Float64("length_nm", voyage.LengthInMiles()))
		voyages = append(voyages, voyage)
	}

	m.log.Info("voyage mining done", zap.String("departure", m.departure.String()),
		zap.String("arrival", m.arrival.String()), zap.String("period", m.period.String()),
		zap.Int("tracks", len(tracks)), zap.Int("voyages", len(voyages)))
	return voyages
}

func (m *VoyageMiner) firstVoyage(track *datastructure.Track, departures, arrivals []int) *datastructure.Track {
	lastEnd := -1
	for _, a := range arrivals {
		d := -1
		for _, cand := range departures {
			if cand > lastEnd && cand < a {
				d = cand
			}
		}
		if d == -1 {
			continue
		}
		lastEnd = a

		dep, arr := track.At(d), track.At(a)
		if !m.period.Contains(dep.Timestamp()) {
			continue
		}
		if m.maxVoyage > 0 && arr.Timestamp().Sub(dep.Timestamp()) > m.maxVoyage {
			continue
		}

		positions := make([]datastructure.Position, 0, a-d+1)
		for i := d; i <= a; i++ {
			pos := track.At(i)
			positions = append(positions, datastructure.NewIndexedPosition(pos.Point(), pos.Timestamp(), i-d))
		}
		voyage, err := datastructure.NewTrack(track.VesselID(), positions)
		if err != nil {
			continue
		}
		return voyage
	}
	return nil
}

// groupByTrack. sorted position indices per track
func groupByTrack(refs []spatialindex.PositionRef) map[int][]int {
	grouped := make(map[int][]int)
	for _, ref := range refs {
		grouped[ref.GetTrack()] = append(grouped[ref.GetTrack()], ref.GetPosition())
	}
	for t := range grouped {
		slices.Sort(grouped[t])
	}
	return grouped
}

// AverageLengthInMiles. mean sailed distance of tracks, 0 for none
func AverageLengthInMiles(tracks []*datastructure.Track) float64 {
	if len(tracks) == 0 {
		return 0
	}
	total := 0.0
	for _, track := range tracks {
		total += track.LengthInMiles()
	}
	return total / float64(len(tracks))
}
