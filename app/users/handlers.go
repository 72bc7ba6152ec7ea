package users

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	gohttp "github.com/km-arc/nakago/framework/http"
	"github.com/km-arc/nakago/framework/http/validation"
	"github.com/km-arc/nakago/framework/logging"
)

func list(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	svc, ok := service(res, r)
	if !ok {
		return
	}

	users, err := svc.List(r.Context())
	if err != nil {
		fail(res, r, err)
		return
	}
	if users == nil {
		users = []User{}
	}
	res.Success(users)
}

func create(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	svc, ok := service(res, r)
	if !ok {
		return
	}

	var in Input
	if err := gohttp.NewRequest(r).Bind(&in); err != nil {
		res.BadRequest(err.Error())
		return
	}

	user, err := svc.Create(r.Context(), in)
	if err != nil {
		fail(res, r, err)
		return
	}
	res.Created(user)
}

func show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	id, err := uuid.FromString(gohttp.Param(r, "id"))
	if err != nil {
		res.NotFound("User not found.")
		return
	}

	svc, ok := service(res, r)
	if !ok {
		return
	}

	user, err := svc.Get(r.Context(), id)
	if err != nil {
		fail(res, r, err)
		return
	}
	res.Success(user)
}

func service(res *gohttp.Response, r *http.Request) (Service, bool) {
	svc, err := gohttp.DependencyTag(r, ServiceTag)
	if err != nil {
		fail(res, r, err)
		return nil, false
	}
	return svc, true
}

// fail maps service errors to responses: 404 for unknown users, 422 for
// invalid input, 500 otherwise.
func fail(res *gohttp.Response, r *http.Request, err error) {
	var invalid validation.Errors
	switch {
	case errors.Is(err, ErrNotFound):
		res.NotFound("User not found.")
	case errors.As(err, &invalid):
		res.Unprocessable(invalid)
	default:
		var log logrus.FieldLogger = logrus.StandardLogger()
		if i, ok := gohttp.Container(r); ok {
			log = logging.Logger(r.Context(), i)
		}
		log.WithError(err).
			WithField("request_id", gohttp.NewRequest(r).ID()).
			Error("users request failed")
		res.ServerError()
	}
}
