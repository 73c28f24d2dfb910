package matching

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"dmappex-backend/internal/shared/metrics"
	"dmappex-backend/internal/shared/server/middleware"
	"dmappex-backend/internal/shared/server/respond"
)

// calculateMatchesRequest is the wire shape of a match request. Strings are
// pointers so that an empty value is accepted while a missing key is not.
type calculateMatchesRequest struct {
	Features      []string           `json:"features" binding:"required"`
	Budget        *string            `json:"budget" binding:"required"`
	Priorities    map[string]float64 `json:"priorities" binding:"required"`
	UseCase       *string            `json:"use_case" binding:"required"`
	TeamSize      *string            `json:"team_size" binding:"required"`
	MonthlyVolume *string            `json:"monthly_volume" binding:"required"`
}

func (r calculateMatchesRequest) toRequest() Request {
	return Request{
		Features:      r.Features,
		Budget:        *r.Budget,
		Priorities:    r.Priorities,
		UseCase:       *r.UseCase,
		TeamSize:      *r.TeamSize,
		MonthlyVolume: *r.MonthlyVolume,
	}
}

// Handler wires HTTP handlers to the matching service.
type Handler struct {
	Svc *Service
}

var registerTagNames sync.Once

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	registerTagNames.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches matching routes to the router group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/calculate-matches", h.calculateMatches)
}

func (h *Handler) calculateMatches(c *gin.Context) {
	var body calculateMatchesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncMatch(metrics.OutcomeInvalid)
		respond.Error(c, http.StatusUnprocessableEntity, bindingErrors(err))
		return
	}

	req := body.toRequest()
	c.Set(middleware.BudgetKey, req.Budget)
	c.Set(middleware.UseCaseKey, req.UseCase)

	resp, err := h.Svc.Calculate(c.Request.Context(), req)
	if err != nil {
		metrics.IncMatch(metrics.OutcomeError)
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.IncMatch(metrics.OutcomeOK)
	respond.OK(c, resp)
}

// bindingErrors converts decode and validation failures into field errors.
func bindingErrors(err error) []respond.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]respond.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, respond.FieldError{
				Loc:  []string{"body", fe.Field()},
				Msg:  "Field required",
				Type: "missing",
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []respond.FieldError{{
			Loc:  loc,
			Msg:  "Input should be a valid " + jsonTypeName(typeErr.Type),
			Type: "type_error",
		}}
	}

	if errors.Is(err, io.EOF) {
		return []respond.FieldError{{
			Loc:  []string{"body"},
			Msg:  "Field required",
			Type: "missing",
		}}
	}

	return []respond.FieldError{{
		Loc:  []string{"body"},
		Msg:  "JSON decode error: " + err.Error(),
		Type: "json_invalid",
	}}
}

// jsonTypeName names t the way a JSON client would see it.
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return jsonTypeName(t.Elem())
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "dictionary"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "value"
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
