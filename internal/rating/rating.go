// Package rating implements the match-grained ELO update law of spec.md
// section 4.5: ratings persist across processes as a flat record set keyed
// by model identifier, and updates are serialized under a single writer
// lock so concurrent matches commit linearizably.
package rating

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/lox/pokerforbots-arena/internal/fileutil"
	"github.com/lox/pokerforbots-arena/internal/model"
	"github.com/rs/zerolog"
)

// Service holds the process-wide rating map and guards it with a single
// writer lock, generalizing BotPool's rngMutex (internal/server/pool.go)
// from "shared RNG state" to "shared rating state".
type Service struct {
	mu      sync.Mutex
	path    string
	logger  zerolog.Logger
	ratings map[string]model.ELORating
}

// NewService loads an existing rating file at path, if present, or starts
// from an empty rating set.
func NewService(path string, logger zerolog.Logger) (*Service, error) {
	s := &Service{path: path, logger: logger, ratings: make(map[string]model.ELORating)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("rating: read %s: %w", path, err)
	}
	var records []model.ELORating
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("rating: parse %s: %w", path, err)
	}
	for _, r := range records {
		s.ratings[r.Model] = r
	}
	return s, nil
}

// Get returns a model's current rating, or the default 1500/0-0-0 record if
// the model has never played a rated match.
func (s *Service) Get(modelName string) model.ELORating {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(modelName)
}

func (s *Service) get(modelName string) model.ELORating {
	if r, ok := s.ratings[modelName]; ok {
		return r
	}
	return model.ELORating{Model: modelName, Rating: model.DefaultRating}
}

// kFactor returns the ELO learning rate for a player with g pre-match games
// played, per spec.md section 4.5 step 3: 40 below 30 games, 20 through 99,
// 10 thereafter.
func kFactor(g int) float64 {
	switch {
	case g < 30:
		return 40
	case g < 100:
		return 20
	default:
		return 10
	}
}

// expected returns the win probability the ELO formula assigns to a player
// rated r against an opponent rated opp.
func expected(r, opp int) float64 {
	return 1 / (1 + math.Pow(10, float64(opp-r)/400))
}

// ApplyMatch updates winner's and loser's ratings for one completed match
// and persists the result atomically. Pass draw=true for a drawn match, in
// which case winnerModel/loserModel are treated symmetrically (S=0.5 each).
func (s *Service) ApplyMatch(winnerModel, loserModel string, draw bool) (winner, loser model.ELORating, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(winnerModel)
	l := s.get(loserModel)

	ew := expected(w.Rating, l.Rating)
	el := 1 - ew

	sw, sl := 1.0, 0.0
	if draw {
		sw, sl = 0.5, 0.5
	}

	kw := kFactor(w.GamesPlayed)
	kl := kFactor(l.GamesPlayed)

	w.Rating = int(math.Round(float64(w.Rating) + kw*(sw-ew)))
	l.Rating = int(math.Round(float64(l.Rating) + kl*(sl-el)))

	w.GamesPlayed++
	l.GamesPlayed++
	if draw {
		w.Draws++
		l.Draws++
	} else {
		w.Wins++
		l.Losses++
	}

	s.ratings[w.Model] = w
	s.ratings[l.Model] = l

	if err := s.persist(); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist ratings")
		return model.ELORating{}, model.ELORating{}, err
	}
	return w, l, nil
}

// All returns every persisted rating, sorted by rating descending then by
// model name, for leaderboard display.
func (s *Service) All() []model.ELORating {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ELORating, 0, len(s.ratings))
	for _, r := range s.ratings {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Model < out[j].Model
	})
	return out
}

// persist must be called with s.mu held.
func (s *Service) persist() error {
	records := make([]model.ELORating, 0, len(s.ratings))
	for _, r := range s.ratings {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Model < records[j].Model })

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("rating: marshal: %w", err)
	}
	return fileutil.WriteFileAtomic(s.path, data, 0o644)
}
