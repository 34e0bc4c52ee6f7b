package server

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ListCollectionResponse represents the response for listing one collection
type ListCollectionResponse struct {
	Collection string `json:"collection"`
	Items      any    `json:"items"`
	Markup     string `json:"markup"`
}

// handleAddToCollection adds an entry built from the session's scalar inputs
// to the named collection. Inputs supplied in the body are merged into the
// session first, so a client can set and add in one request.
func (s *Server) handleAddToCollection(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	if r.Body != nil && r.ContentLength != 0 {
		var inputs map[string]string
		if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		sess.SetFields(inputs)
	}

	if err := sess.Add(r.PathValue("name")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleListCollection returns one collection with its rendered markup
func (s *Server) handleListCollection(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	name := r.PathValue("name")
	items, err := sess.List(name)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ListCollectionResponse{
		Collection: name,
		Items:      items,
		Markup:     s.sessionResponse(sess).Lists[name],
	})
}

// handleRemoveFromCollection removes the item at {index}
func (s *Server) handleRemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid index: "+r.PathValue("index"))
		return
	}
	if err := sess.Remove(r.PathValue("name"), index); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleEditCollectionItem extracts the item at {index} back into the scalar
// inputs. The response's fields carry the extracted values; the item is gone
// from the collection until the client adds it again.
func (s *Server) handleEditCollectionItem(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	if sess == nil {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid index: "+r.PathValue("index"))
		return
	}
	if err := sess.Edit(r.PathValue("name"), index); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}
