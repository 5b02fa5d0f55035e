package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/sleekshopper/storefront/internal/profile"
)

// getAccount returns the current user profile from the identity collaborator.
func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Current(r.Context())
	if err != nil {
		if errors.Is(err, profile.ErrNotSignedIn) {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		h.internalError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeProfile(&e, p)
	writeJSON(w, http.StatusOK, &e)
}

// updateAccount forwards a profile update to the identity collaborator and
// returns the resulting profile.
func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}

	var u profile.Update
	d := jx.DecodeBytes(body)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		var target *string
		switch key {
		case "firstName":
			target = &u.FirstName
		case "lastName":
			target = &u.LastName
		case "phone":
			target = &u.Phone
		case "address":
			target = &u.Address
		case "avatarUrl":
			target = &u.AvatarURL
		default:
			return d.Skip()
		}
		v, err := d.Str()
		*target = v
		return err
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := h.profiles.UpdateProfile(r.Context(), u)
	if err != nil {
		if errors.Is(err, profile.ErrNotSignedIn) {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		h.internalError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeProfile(&e, p)
	writeJSON(w, http.StatusOK, &e)
}

func encodeProfile(e *jx.Encoder, p profile.Profile) {
	e.ObjStart()
	e.FieldStart("firstName")
	e.Str(p.FirstName)
	e.FieldStart("lastName")
	e.Str(p.LastName)
	e.FieldStart("email")
	e.Str(p.Email)
	e.FieldStart("phone")
	e.Str(p.Phone)
	e.FieldStart("address")
	e.Str(p.Address)
	e.FieldStart("avatarUrl")
	e.Str(p.AvatarURL)
	e.ObjEnd()
}
