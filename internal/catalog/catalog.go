// Package catalog holds the static tables of balance exercises, coordination
// games and camera exercises. Entries are immutable; accessors return copies.
package catalog

import (
	"math/rand/v2"

	"github.com/ayusman/motionlab/internal/movement"
)

// Difficulty grades an exercise.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Exercise is a balance training exercise.
type Exercise struct {
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Instructions     string         `json:"instructions"`
	Duration         int            `json:"duration"`
	Difficulty       Difficulty     `json:"difficulty"`
	Tips             []string       `json:"tips"`
	PoseRequirements map[string]any `json:"pose_requirements"`
}

// Game is a coordination game.
type Game struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions"`
	Type         string   `json:"type"`
	Rounds       int      `json:"rounds"`
	AgeGroup     string   `json:"age_group"`
	Skills       []string `json:"skills"`
}

// CameraExercise is a timed movement checked frame by frame.
type CameraExercise struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Instructions string        `json:"instructions"`
	Duration     int           `json:"duration"`
	Difficulty   Difficulty    `json:"difficulty"`
	Movement     movement.Type `json:"movement"`
}

// Exercises returns a copy of the balance exercise catalog.
func Exercises() []Exercise {
	out := make([]Exercise, len(exercises))
	for i, e := range exercises {
		out[i] = e.clone()
	}
	return out
}

// Games returns a copy of the coordination game catalog.
func Games() []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = g.clone()
	}
	return out
}

// CameraExercises returns a copy of the camera exercise catalog.
func CameraExercises() []CameraExercise {
	out := make([]CameraExercise, len(cameraExercises))
	copy(out, cameraExercises)
	return out
}

// ByDifficulty returns the exercises whose difficulty equals d exactly.
// Matching is case sensitive: "Hard" matches nothing.
func ByDifficulty(d Difficulty) []Exercise {
	var out []Exercise
	for _, e := range exercises {
		if e.Difficulty == d {
			out = append(out, e.clone())
		}
	}
	return out
}

// SelectExercise picks an exercise of the requested difficulty uniformly at
// random. When no entry matches, the whole catalog is the candidate set.
func SelectExercise(d Difficulty, r *rand.Rand) Exercise {
	candidates := ByDifficulty(d)
	if len(candidates) == 0 {
		candidates = Exercises()
	}

	var i int
	if r != nil {
		i = r.IntN(len(candidates))
	} else {
		i = rand.IntN(len(candidates))
	}
	return candidates[i]
}

// GameByName looks up a coordination game by its display name.
func GameByName(name string) (Game, bool) {
	for _, g := range games {
		if g.Name == name {
			return g.clone(), true
		}
	}
	return Game{}, false
}

// CameraExerciseByMovement looks up a camera exercise by its movement type.
func CameraExerciseByMovement(m movement.Type) (CameraExercise, bool) {
	for _, c := range cameraExercises {
		if c.Movement == m {
			return c, true
		}
	}
	return CameraExercise{}, false
}

func (e Exercise) clone() Exercise {
	e.Tips = append([]string(nil), e.Tips...)
	reqs := make(map[string]any, len(e.PoseRequirements))
	for k, v := range e.PoseRequirements {
		reqs[k] = v
	}
	e.PoseRequirements = reqs
	return e
}

func (g Game) clone() Game {
	g.Skills = append([]string(nil), g.Skills...)
	return g
}
