package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/evotrack/pkg/fitness"
	helper "github.com/lintang-b-s/evotrack/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 4 << 20

var requestValidate, requestTrans = newRequestValidator()

func newRequestValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}
	return validate, trans
}

type trackAPI struct {
	trackService TrackService
	log          *zap.Logger
}

func New(trackService TrackService, log *zap.Logger) *trackAPI {
	return &trackAPI{
		trackService: trackService,
		log:          log,
	}
}

func (api *trackAPI) Routes(group *helper.RouteGroup) {
	group.POST("/reconstructTrack", api.reconstructTrack)
	group.POST("/evaluate", api.evaluate)
	group.GET("/trainingTargets", api.trainingTargets)
}

// reconstructTrack
//
//	@Summary		reconstruct the track encoded by a genome
//	@Description	positions, polyline, length and duration of the track sailed at the reference speed
//	@Tags			tracks
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/reconstructTrack [post]
//	@Param			body	body		genomeRequest	true	"genome or polyline"
//	@Success		200		{object}	reconstructTrackResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
func (api *trackAPI) reconstructTrack(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	genome, ok := api.decodeGenomeRequest(w, r)
	if !ok {
		return
	}

	track, err := api.trackService.ReconstructTrack(genome)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewReconstructTrackResponse(track)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// evaluate
//
//	@Summary		fitness of a genome
//	@Description	fitness and track error breakdown against the training targets. results are cached in memory, nothing is persisted.
//	@Tags			tracks
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/evaluate [post]
//	@Param			body	body		genomeRequest	true	"genome or polyline"
//	@Success		200		{object}	evaluateResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
func (api *trackAPI) evaluate(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	genome, ok := api.decodeGenomeRequest(w, r)
	if !ok {
		return
	}

	fit, te, err := api.trackService.Evaluate(genome)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEvaluateResponse(fit, te)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// trainingTargets
//
//	@Summary	training target positions
//	@Tags		tracks
//	@Produce	application/json
//	@Router		/trainingTargets [get]
//	@Success	200	{object}	trainingTargetsResponse
func (api *trackAPI) trainingTargets(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewTrainingTargetsResponse(api.trackService.TrainingTargets())},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *trackAPI) decodeGenomeRequest(w http.ResponseWriter, r *http.Request) (fitness.Genome, bool) {
	var request genomeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return nil, false
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return nil, false
	}

	if err := requestValidate.Struct(request); err != nil {
		vv := translateError(err, requestTrans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return nil, false
	}

	genome, err := request.toGenome()
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return nil, false
	}
	return genome, true
}
