package server

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// errNoTrack is returned by pose endpoints for models without a skeleton.
var errNoTrack = errors.New("model has no animation track")

type assetSummary struct {
	Name           string    `json:"name"`
	Skinned        bool      `json:"skinned"`
	Joints         int       `json:"joints"`
	Keyframes      int       `json:"keyframes"`
	Duration       float64   `json:"duration"`
	Keytimes       []float64 `json:"keytimes"`
	Vertices       int       `json:"vertices"`
	Indices        int       `json:"indices"`
	Materials      int       `json:"materials"`
	MaterialPaths  []string  `json:"material_paths"`
	BoundingRadius float32   `json:"bounding_radius"`
}

type jointJSON struct {
	Index     int        `json:"index"`
	Parent    int32      `json:"parent"`
	Position  mgl32.Vec3 `json:"position"`
	Transform mgl32.Mat4 `json:"transform"`
}

type poseJSON struct {
	Time     float64     `json:"time"`
	Enabled  bool        `json:"enabled"`
	Previous int         `json:"previous"`
	Frame    int         `json:"frame"`
	Fraction float64     `json:"fraction"`
	Joints   []jointJSON `json:"joints"`
}

type lineJSON struct {
	Joint int        `json:"joint"`
	Kind  string     `json:"kind"`
	From  mgl32.Vec3 `json:"from"`
	To    mgl32.Vec3 `json:"to"`
	Color mgl32.Vec4 `json:"color"`
}

// summarize builds the /api/asset payload.
func summarize(m model.Model) assetSummary {
	out := assetSummary{
		Name:           m.Name(),
		Skinned:        m.Skinned(),
		Vertices:       len(m.Mesh().Vertices),
		Indices:        len(m.Mesh().Indices),
		Materials:      len(m.Materials()),
		MaterialPaths:  m.MaterialPaths(),
		BoundingRadius: m.BoundingRadius(),
		Keytimes:       []float64{},
	}
	if out.MaterialPaths == nil {
		out.MaterialPaths = []string{}
	}
	if track := m.Track(); track != nil {
		out.Joints = len(track.BindPose)
		out.Keyframes = len(track.Keyframes)
		out.Duration = track.Duration
		for _, k := range track.Keyframes {
			out.Keytimes = append(out.Keytimes, k.Keytime)
		}
	}
	return out
}

// encodePose converts a pose to its JSON form.
func encodePose(p model.Pose) []jointJSON {
	out := make([]jointJSON, len(p))
	for i, j := range p {
		out[i] = jointJSON{
			Index:     i,
			Parent:    j.ParentIndex,
			Position:  p.Position(i),
			Transform: j.Transform,
		}
	}
	return out
}

// encodeSegments converts resolved segments to their JSON form.
func encodeSegments(segments []debug.Segment) []lineJSON {
	out := make([]lineJSON, len(segments))
	for i, s := range segments {
		out[i] = lineJSON{Joint: s.Joint, Kind: s.Kind.String(), From: s.From, To: s.To, Color: s.Color}
	}
	return out
}

// sampleQuery reads the t and enabled query parameters. t defaults to 0, enabled to true.
// t must be a finite, non-negative number of seconds.
func sampleQuery(r *http.Request) (seconds float64, enabled bool, err error) {
	q := r.URL.Query()
	enabled = true
	if v := q.Get("t"); v != "" {
		if seconds, err = strconv.ParseFloat(v, 64); err != nil {
			return 0, false, errors.Wrapf(err, "bad t %q", v)
		}
		if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return 0, false, errors.Errorf("bad t %q: must be finite", v)
		}
		if seconds < 0 {
			return 0, false, errors.Errorf("bad t %q: must not be negative", v)
		}
	}
	if v := q.Get("enabled"); v != "" {
		if enabled, err = strconv.ParseBool(v); err != nil {
			return 0, false, errors.Wrapf(err, "bad enabled %q", v)
		}
	}
	return seconds, enabled, nil
}

// loopTime wraps seconds into one loop of track.
func loopTime(track *model.AnimationTrack, seconds float64) float64 {
	return math.Mod(seconds, track.Duration)
}

// samplePose resolves the pose at seconds the same way a playback session would at that time.
func samplePose(track *model.AnimationTrack, seconds float64, enabled bool) poseJSON {
	seconds = loopTime(track, seconds)
	out := poseJSON{Time: seconds, Enabled: enabled}
	if !enabled {
		out.Joints = encodePose(track.BindPose)
		return out
	}
	prev, frame, t := animator.ResolveKeyframes(track, seconds)
	out.Previous, out.Frame, out.Fraction = prev, frame, t
	out.Joints = encodePose(animator.SampleAt(track, seconds))
	return out
}

func (s *server) handleAsset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, summarize(s.model))
}

func (s *server) handlePose(w http.ResponseWriter, r *http.Request) {
	track := s.model.Track()
	if track == nil {
		writeError(w, http.StatusNotFound, errNoTrack)
		return
	}
	seconds, enabled, err := sampleQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, samplePose(track, seconds, enabled))
}

func (s *server) handleLines(w http.ResponseWriter, r *http.Request) {
	track := s.model.Track()
	if track == nil {
		writeError(w, http.StatusNotFound, errNoTrack)
		return
	}
	seconds, enabled, err := sampleQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p := track.BindPose
	if enabled {
		p = animator.SampleAt(track, loopTime(track, seconds))
	}
	writeJSON(w, encodeSegments(s.resolver.Resolve(p, nil)))
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	seconds, enabled, err := sampleQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := s.baker.EncodeStill(&buf, s.model, seconds, enabled); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	writeResult(w, buf.Bytes())
}

func writeJSON(w http.ResponseWriter, data any) {
	res, err := json.Marshal(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeResult(w, res)
}

func writeResult(w http.ResponseWriter, data []byte) {
	if _, err := w.Write(data); err != nil {
		log.Printf("[Server] Error when writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	type jError struct {
		Error string `json:"error"`
	}
	data, merr := json.Marshal(&jError{Error: err.Error()})
	if merr != nil {
		log.Printf("[Server] Error marshaling error '%v': %v", err, merr)
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	writeResult(w, data)
}
