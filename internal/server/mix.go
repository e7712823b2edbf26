package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/gamma"
	"github.com/MeKo-Tech/colorblend/internal/mixer"
	"github.com/MeKo-Tech/colorblend/internal/rgba"
)

// ModeInfo describes one mode in the /modes listing.
type ModeInfo struct {
	Name   string `json:"name"`
	Family string `json:"family"`
}

func (s *Server) serveModes(w http.ResponseWriter, r *http.Request) {
	modes := blend.Modes()
	infos := make([]ModeInfo, 0, len(modes))
	for _, m := range modes {
		infos = append(infos, ModeInfo{Name: m.String(), Family: m.Family()})
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// serveMix handles /mix?src=#hex&dst=#hex&mode=name[&op=name][&gamma=curve].
func (s *Server) serveMix(w http.ResponseWriter, r *http.Request) {
	req, err := parseMixQuery(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := mixer.Mix(req)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func parseMixQuery(r *http.Request) (mixer.Request, error) {
	q := r.URL.Query()

	src, err := rgba.ParseHex(q.Get("src"))
	if err != nil {
		return mixer.Request{}, fmt.Errorf("src: %w", err)
	}
	dst, err := rgba.ParseHex(q.Get("dst"))
	if err != nil {
		return mixer.Request{}, fmt.Errorf("dst: %w", err)
	}
	curve, err := gamma.ParseCurve(q.Get("gamma"))
	if err != nil {
		return mixer.Request{}, err
	}

	return mixer.Request{
		Src:   rgba.HexColor(src),
		Dst:   rgba.HexColor(dst),
		Mode:  q.Get("mode"),
		Op:    q.Get("op"),
		Gamma: curve,
	}, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().Error("failed to encode response", "error", err)
	}
}
