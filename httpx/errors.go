package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/event-intake/log"
	"github.com/mbolis/event-intake/model"
)

// Will send an envelope with the given status
func Respond(w http.ResponseWriter, r *http.Request, status int, resp model.Response) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// Will log a debug message, and send a successful envelope
func Success(w http.ResponseWriter, r *http.Request, code string, msg string, id any) {
	log.Debugf("%s: ok (%v)", code, id)
	Respond(w, r, http.StatusOK, model.Response{Success: true, Message: msg, ID: id})
}

// Will log an error, and send an envelope with status 500,
// the given message and the error text as technical detail
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, msg string, err error) {
	log.Errorf("%s: %s", code, err)
	Respond(w, r, http.StatusInternalServerError, model.Response{
		Message:        msg,
		TechnicalError: err.Error(),
	})
}

// Will log an error code and message at the given level,
// and send an envelope with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Logf(level, "%s: %s", code, errMsg)
	Respond(w, r, status, model.Response{Message: errMsg})
}
