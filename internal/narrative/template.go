package narrative

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// TemplateModel is the model name reported for passages from TemplateLLM.
const TemplateModel = "local-template"

var (
	templateOpenings = []string{
		"Neon rain slicked the steelbones of the city, every drop an impatient metronome.",
		"The desert sky bruised purple as engines howled awake beyond the dunes.",
		"Towers leaned into the wind like conspirators as the night market lit its lanterns.",
	}
	templateHeartbeats = []string{
		"Somewhere deep underground, an old oath stirred.",
		"Between breaths, the world kept a secret just for the bold.",
		"Every sensor blinked amber as fate rerouted in real time.",
	}
	templateEscalations = []string{
		"Allies blurred into adversaries and back again in the same sentence.",
		"The plan bent, never quite breaking, fed by stubborn hope.",
		"Each step forward rewrote the rules no one dared to speak aloud.",
	}
	templateFinishes = []string{
		"By dawn, nothing sacred remained untouched—exactly as promised.",
		"The chapter closed on a vow sharper than any blade.",
		"In the silence after the storm, the next rebellion inhaled.",
	}
)

// TemplateLLM is an offline stand-in for a real model. Each call stitches one opening, one
// heartbeat, one escalation and one finish sentence, chosen by a PRNG seeded once at
// construction. The same seed and call order always yield the same outputs.
// Sampling parameters are ignored.
type TemplateLLM struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed int64
}

// NewTemplateLLM creates a template backend seeded with seed.
func NewTemplateLLM(seed int64) *TemplateLLM {
	return &TemplateLLM{
		rng:  rand.New(rand.NewPCG(uint64(seed), 0)),
		seed: seed,
	}
}

// Seed returns the seed the backend was created with.
func (t *TemplateLLM) Seed() int64 {
	return t.seed
}

// Generate returns a pseudo-random passage composed of the fixed fragments.
func (t *TemplateLLM) Generate(ctx context.Context, prompt string, params Sampling) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLLMFailed, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	parts := []string{
		t.choose(templateOpenings),
		t.choose(templateHeartbeats),
		t.choose(templateEscalations),
		t.choose(templateFinishes),
	}
	return strings.Join(parts, " "), nil
}

func (t *TemplateLLM) choose(options []string) string {
	return options[t.rng.IntN(len(options))]
}

// NewSeed draws a seed from crypto/rand for runs that do not pin one.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
