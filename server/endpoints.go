package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dekarrin/pushdown/internal/version"
	"github.com/dekarrin/pushdown/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GET /info: get version info on the server and the engine.
func (ps *PushdownServer) doEndpoint_Info_GET(req *http.Request) EndpointResult {
	resp := InfoModel{
		Version:       version.ServerCurrent,
		EngineVersion: version.Current,
		Start:         ps.g.StartSymbol(),
	}
	return jsonOK(resp, "info returned")
}

// GET /rules: get the production rules of the loaded grammar.
func (ps *PushdownServer) doEndpoint_Rules_GET(req *http.Request) EndpointResult {
	resp := grammarToRulesModel(ps.g)
	return jsonOK(resp, "rules returned")
}

// POST /checks: check a word against the grammar and record the result.
func (ps *PushdownServer) doEndpoint_Checks_POST(req *http.Request) EndpointResult {
	checkData := CheckRequest{}
	err := parseJSON(req, &checkData)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	check, err := ps.CheckWord(req.Context(), checkData.Word)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError(err.Error())
	}

	resp := daoCheckToModel(check)
	return jsonCreated(resp, "check %s created; word %q accepted=%v", check.ID, check.Word, check.Accepted)
}

// GET /checks: get all recorded checks.
func (ps *PushdownServer) doEndpoint_Checks_GET(req *http.Request) EndpointResult {
	checks, err := ps.GetAllChecks(req.Context())
	if err != nil {
		return jsonInternalServerError(err.Error())
	}

	resp := make([]CheckModel, len(checks))
	for i := range checks {
		resp[i] = daoCheckToModel(checks[i])
	}

	return jsonOK(resp, "all checks returned")
}

// GET /checks/{id}: get a particular recorded check.
func (ps *PushdownServer) doEndpoint_ChecksID_GET(req *http.Request) EndpointResult {
	id := requireIDParam(req)

	check, err := ps.GetCheck(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return jsonNotFound("check %s not found", id)
		}
		return jsonInternalServerError(err.Error())
	}

	resp := daoCheckToModel(check)
	return jsonOK(resp, "check %s returned", id)
}

// DELETE /checks/{id}: delete a recorded check.
func (ps *PushdownServer) doEndpoint_ChecksID_DELETE(req *http.Request) EndpointResult {
	id := requireIDParam(req)

	_, err := ps.DeleteCheck(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return jsonNotFound("check %s not found", id)
		}
		return jsonInternalServerError(err.Error())
	}

	return jsonNoContent("check %s deleted", id)
}

// requireIDParam gets the ID of the main entity being referenced in the URI and
// returns it. It panics if the key is not there or is not parsable.
func requireIDParam(r *http.Request) uuid.UUID {
	id, err := getURLParam(r, "id", uuid.Parse)
	if err != nil {
		panic(err.Error())
	}
	return id
}

func getURLParam[E any](r *http.Request, key string, parse func(string) (E, error)) (val E, err error) {
	valStr := chi.URLParam(r, key)
	if valStr == "" {
		// either it does not exist or it is nil; treat both as the same and
		// return an error
		return val, fmt.Errorf("parameter does not exist")
	}

	val, err = parse(valStr)
	if err != nil {
		return val, serr.New("", serr.ErrBadArgument)
	}
	return val, nil
}

// v must be a pointer to a type. Will return error such that
// errors.Is(err, serr.ErrBodyUnmarshal) returns true if it is problem decoding
// the JSON itself.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}

	return nil
}
