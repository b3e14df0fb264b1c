package controllers

import (
	"fmt"

	"github.com/lintang-b-s/evotrack/pkg/datastructure"
	"github.com/lintang-b-s/evotrack/pkg/fitness"
	"github.com/lintang-b-s/evotrack/pkg/geo"
	"github.com/lintang-b-s/evotrack/pkg/trackerror"
)

const maxGenomeLength = 10000

// genomeRequest. either the genes or a polyline (precision 5) of the path they encode
type genomeRequest struct {
	Genome   fitness.Genome `json:"genome" validate:"required_without=Polyline,max=10000"`
	Polyline string         `json:"polyline" validate:"required_without=Genome,excluded_with=Genome"`
}

func (r genomeRequest) toGenome() (fitness.Genome, error) {
	if r.Polyline == "" {
		return r.Genome, nil
	}
	points, err := geo.PointsFromPolyline(r.Polyline)
	if err != nil {
		return nil, fmt.Errorf("invalid polyline: %w", err)
	}
	if len(points) > maxGenomeLength+1 {
		return nil, fmt.Errorf("polyline has %d points, at most %d are allowed", len(points), maxGenomeLength+1)
	}
	return fitness.GenomeFromPoints(points)
}

type positionResponse struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp int64   `json:"ts"`
	Index     int     `json:"index"`
}

func NewPositionResponse(p datastructure.Position) positionResponse {
	return positionResponse{
		Lat:       p.Lat(),
		Lon:       p.Lon(),
		Timestamp: p.Timestamp().Seconds(),
		Index:     p.Index(),
	}
}

func NewPositionsResponse(positions []datastructure.Position) []positionResponse {
	resp := make([]positionResponse, len(positions))
	for i, p := range positions {
		resp[i] = NewPositionResponse(p)
	}
	return resp
}

type reconstructTrackResponse struct {
	VesselID  string             `json:"vessel_id"`
	Positions []positionResponse `json:"positions"`
	Polyline  string             `json:"polyline"`
	LengthNM  float64            `json:"length_nm"`
	DurationS int64              `json:"duration_s"`
}

func NewReconstructTrackResponse(track *datastructure.Track) reconstructTrackResponse {
	points := make([]geo.Point, track.Len())
	for i, p := range track.Positions() {
		points[i] = p.Point()
	}
	return reconstructTrackResponse{
		VesselID:  track.VesselID(),
		Positions: NewPositionsResponse(track.Positions()),
		Polyline:  geo.PolylineFromPoints(points),
		LengthNM:  track.LengthInMiles(),
		DurationS: int64(track.Duration().Seconds()),
	}
}

type segmentResponse struct {
	From                           positionResponse `json:"from"`
	To                             positionResponse `json:"to"`
	LengthNM                       float64          `json:"length_nm"`
	DurationS                      int64            `json:"duration_s"`
	Covered                        int              `json:"covered"`
	AvgSquaredDistance             float64          `json:"avg_squared_distance"`
	MinSquaredDistance             float64          `json:"min_squared_distance"`
	MaxSquaredDistance             float64          `json:"max_squared_distance"`
	VarSquaredDistance             float64          `json:"var_squared_distance"`
	AvgSegmentEndsDistance         float64          `json:"avg_segment_ends_distance"`
	SquaredDistanceEndToLastTarget float64          `json:"squared_distance_end_to_last_target"`
}

type trackErrorResponse struct {
	Coverage       float64           `json:"coverage"`
	TotalSegment   float64           `json:"total_segment"`
	AverageSegment float64           `json:"average_segment"`
	Heading        float64           `json:"heading"`
	Destination    float64           `json:"destination"`
	Assigned       int               `json:"assigned"`
	Unassigned     int               `json:"unassigned"`
	Segments       []segmentResponse `json:"segments"`
}

func NewTrackErrorResponse(te *trackerror.TrackError) trackErrorResponse {
	segments := make([]segmentResponse, 0, len(te.Segments()))
	for _, seg := range te.Segments() {
		st := seg.Stats()
		segments = append(segments, segmentResponse{
			From:                           NewPositionResponse(seg.GetP1()),
			To:                             NewPositionResponse(seg.GetP2()),
			LengthNM:                       seg.GetLengthInMiles(),
			DurationS:                      int64(seg.GetDuration().Seconds()),
			Covered:                        st.Covered,
			AvgSquaredDistance:             st.AvgSquaredDistance,
			MinSquaredDistance:             st.MinSquaredDistance,
			MaxSquaredDistance:             st.MaxSquaredDistance,
			VarSquaredDistance:             st.VarSquaredDistance,
			AvgSegmentEndsDistance:         st.AvgSegmentEndsDistance,
			SquaredDistanceEndToLastTarget: st.SquaredDistanceEndToLastTarget,
		})
	}
	return trackErrorResponse{
		Coverage:       te.CoverageError,
		TotalSegment:   te.TotalSegmentError,
		AverageSegment: te.AvgSegmentError,
		Heading:        te.HeadingError,
		Destination:    te.DestinationError,
		Assigned:       te.Assigned,
		Unassigned:     te.Unassigned,
		Segments:       segments,
	}
}

type evaluateResponse struct {
	Fitness float64            `json:"fitness"`
	Error   trackErrorResponse `json:"error"`
}

func NewEvaluateResponse(fit float64, te *trackerror.TrackError) evaluateResponse {
	return evaluateResponse{
		Fitness: fit,
		Error:   NewTrackErrorResponse(te),
	}
}

type trainingTargetsResponse struct {
	Count     int                `json:"count"`
	Positions []positionResponse `json:"positions"`
}

func NewTrainingTargetsResponse(targets []datastructure.Position) trainingTargetsResponse {
	return trainingTargetsResponse{
		Count:     len(targets),
		Positions: NewPositionsResponse(targets),
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
