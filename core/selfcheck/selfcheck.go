// Package selfcheck provides the self-check engine for verifying the
// alphabet tables and the codec, producing JSON reports for CI.
package selfcheck

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/FocuswithJustin/ecoji/core/alphabet"
	"github.com/FocuswithJustin/ecoji/core/codec"
	"github.com/FocuswithJustin/ecoji/core/digest"
	"github.com/FocuswithJustin/ecoji/core/errors"
)

// Version is the report format version.
const Version = "1.0.0"

// Status values for reports.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Check types.
const (
	CheckAlphabetBijection = "ALPHABET_BIJECTION"
	CheckPaddingDisjoint   = "PADDING_DISJOINT"
	CheckRoundtrip         = "ROUNDTRIP"
	CheckCrossVersion      = "CROSS_VERSION"
	CheckKnownVector       = "KNOWN_VECTOR"
)

// Plan defines a set of checks to run.
type Plan struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Checks      []PlanCheck `json:"checks"`
}

// PlanCheck defines a check in a plan. Version selects the alphabet the
// check runs against.
type PlanCheck struct {
	Type        string          `json:"type"`
	Label       string          `json:"label"`
	Version     int             `json:"version"`
	Roundtrip   *RoundtripDef   `json:"roundtrip,omitempty"`
	KnownVector *KnownVectorDef `json:"known_vector,omitempty"`
}

// RoundtripDef defines the inputs of a round-trip or cross-version check:
// every length from 0 to MaxLength of a fixed pattern, plus RandomBytes of
// seeded random data.
type RoundtripDef struct {
	MaxLength   int   `json:"max_length"`
	RandomBytes int   `json:"random_bytes"`
	Seed        int64 `json:"seed"`
}

// KnownVectorDef defines a published input/output pair.
type KnownVectorDef struct {
	InputHex string `json:"input_hex"`
	Encoded  string `json:"encoded"`
}

// Report is the output of a self-check execution.
type Report struct {
	ReportVersion string        `json:"report_version"`
	CreatedAt     string        `json:"created_at"`
	PlanID        string        `json:"plan_id"`
	Results       []CheckResult `json:"results"`
	Status        string        `json:"status"`
}

// CheckResult is the result of a single check.
type CheckResult struct {
	CheckType string             `json:"check_type"`
	Label     string             `json:"label"`
	Alphabet  string             `json:"alphabet"`
	Table     *digest.HashResult `json:"table"`
	Pass      bool               `json:"pass"`
	Expected  *HashInfo          `json:"expected,omitempty"`
	Actual    *HashInfo          `json:"actual,omitempty"`
	Details   interface{}        `json:"details,omitempty"`
}

// HashInfo contains hash information for comparison.
type HashInfo struct {
	SHA256 string `json:"sha256,omitempty"`
}

// ToJSON serializes the report to JSON.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Hash returns the SHA-256 hash of the report.
func (r *Report) Hash() string {
	data, _ := json.Marshal(r)
	return digest.Hash(data)
}

// Failed returns the results that did not pass.
func (r *Report) Failed() []CheckResult {
	var failed []CheckResult
	for _, res := range r.Results {
		if !res.Pass {
			failed = append(failed, res)
		}
	}
	return failed
}

// LoadPlan reads a JSON plan from a file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, errors.NewParse("json", path, err.Error())
	}
	return &plan, nil
}

// Executor executes self-check plans.
type Executor struct {
	alphabets map[int]*alphabet.Version
}

// NewExecutor creates a plan executor for the built-in alphabets.
func NewExecutor() *Executor {
	return NewExecutorWithAlphabets(alphabet.All()...)
}

// NewExecutorWithAlphabets creates a plan executor that resolves check
// versions against the given alphabets.
func NewExecutorWithAlphabets(versions ...*alphabet.Version) *Executor {
	e := &Executor{alphabets: make(map[int]*alphabet.Version, len(versions))}
	for _, v := range versions {
		e.alphabets[v.Number()] = v
	}
	return e
}

// Execute runs a self-check plan and returns a report. A failing check is
// reported in the results; an error means the plan itself is malformed.
func (e *Executor) Execute(plan *Plan) (*Report, error) {
	var results []CheckResult
	allPass := true

	for _, check := range plan.Checks {
		result, err := e.executeCheck(&check)
		if err != nil {
			return nil, fmt.Errorf("check %q failed: %w", check.Label, err)
		}
		results = append(results, *result)
		if !result.Pass {
			allPass = false
		}
	}

	status := StatusPass
	if !allPass {
		status = StatusFail
	}

	return &Report{
		ReportVersion: Version,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		PlanID:        plan.ID,
		Results:       results,
		Status:        status,
	}, nil
}

// executeCheck executes a single check.
func (e *Executor) executeCheck(check *PlanCheck) (*CheckResult, error) {
	v, ok := e.alphabets[check.Version]
	if !ok {
		return nil, errors.NewUnsupported("alphabet version", fmt.Sprintf("%d", check.Version))
	}

	var (
		result *CheckResult
		err    error
	)
	switch check.Type {
	case CheckAlphabetBijection:
		result = checkBijection(v)
	case CheckPaddingDisjoint:
		result = checkPaddingDisjoint(v)
	case CheckRoundtrip:
		result, err = checkRoundtrip(v, check.Roundtrip)
	case CheckCrossVersion:
		result, err = checkCrossVersion(v, check.Roundtrip)
	case CheckKnownVector:
		result, err = checkKnownVector(v, check.KnownVector)
	default:
		return nil, fmt.Errorf("unknown check type: %s", check.Type)
	}
	if err != nil {
		return nil, err
	}

	result.CheckType = check.Type
	result.Label = check.Label
	result.Alphabet = v.String()
	result.Table = digest.Table(v)
	return result, nil
}

func checkBijection(v *alphabet.Version) *CheckResult {
	var problems []string
	if v.Len() != alphabet.Size {
		problems = append(problems, fmt.Sprintf("reverse index has %d entries", v.Len()))
	}
	for i := 0; i < alphabet.Size; i++ {
		c := v.Symbol(i)
		if j, ok := v.IndexOf(c); !ok || j != i {
			problems = append(problems, fmt.Sprintf("index %d (U+%04X) maps back to %d", i, c, j))
		}
	}
	return problemResult(problems)
}

func checkPaddingDisjoint(v *alphabet.Version) *CheckResult {
	var problems []string
	pads := []rune{v.Padding(), v.Padding4(0), v.Padding4(1), v.Padding4(2), v.Padding4(3)}
	seen := make(map[rune]bool, len(pads))
	for _, p := range pads {
		if seen[p] {
			problems = append(problems, fmt.Sprintf("padding U+%04X declared twice", p))
		}
		seen[p] = true
		if i, ok := v.IndexOf(p); ok {
			problems = append(problems, fmt.Sprintf("padding U+%04X is also symbol %d", p, i))
		}
	}
	return problemResult(problems)
}

func problemResult(problems []string) *CheckResult {
	if len(problems) == 0 {
		return &CheckResult{Pass: true}
	}
	return &CheckResult{Pass: false, Details: problems}
}

// samples returns the inputs for a round-trip style check.
func samples(def *RoundtripDef) ([][]byte, error) {
	if def == nil {
		return nil, errors.NewValidation("roundtrip", "definition is required")
	}
	if def.MaxLength < 0 || def.RandomBytes < 0 {
		return nil, errors.NewValidation("roundtrip", "lengths must not be negative")
	}

	var out [][]byte
	for n := 0; n <= def.MaxLength; n++ {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(0xff - i*37)
		}
		out = append(out, b)
	}
	if def.RandomBytes > 0 {
		b := make([]byte, def.RandomBytes)
		rand.New(rand.NewSource(def.Seed)).Read(b)
		out = append(out, b)
	}
	return out, nil
}

// compareRoundtrips encodes every sample with enc, decodes with dec and
// compares hashes of the concatenated inputs and outputs.
func compareRoundtrips(enc, dec *codec.Encoding, inputs [][]byte) *CheckResult {
	var want, got bytes.Buffer
	var problems []string
	for _, in := range inputs {
		want.Write(in)
		out, err := dec.DecodeString(enc.EncodeToString(in))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%d bytes: %v", len(in), err))
			continue
		}
		if !bytes.Equal(out, in) {
			problems = append(problems, fmt.Sprintf("%d bytes: decoded data differs", len(in)))
		}
		got.Write(out)
	}

	result := problemResult(problems)
	result.Expected = &HashInfo{SHA256: digest.Hash(want.Bytes())}
	result.Actual = &HashInfo{SHA256: digest.Hash(got.Bytes())}
	return result
}

func checkRoundtrip(v *alphabet.Version, def *RoundtripDef) (*CheckResult, error) {
	inputs, err := samples(def)
	if err != nil {
		return nil, err
	}
	enc := codec.NewEncoding(v)
	return compareRoundtrips(enc, enc, inputs), nil
}

// checkCrossVersion encodes with v and decodes with a decoder whose primary
// alphabet is v's sibling.
func checkCrossVersion(v *alphabet.Version, def *RoundtripDef) (*CheckResult, error) {
	inputs, err := samples(def)
	if err != nil {
		return nil, err
	}
	sibling := v.Sibling()
	if sibling == nil {
		return nil, errors.NewUnsupported("cross-version check", v.String()+" has no sibling")
	}
	return compareRoundtrips(codec.NewEncoding(v), codec.NewEncoding(sibling), inputs), nil
}

func checkKnownVector(v *alphabet.Version, def *KnownVectorDef) (*CheckResult, error) {
	if def == nil {
		return nil, errors.NewValidation("known_vector", "definition is required")
	}
	in, err := hex.DecodeString(def.InputHex)
	if err != nil {
		return nil, errors.NewParse("hex", "input_hex", err.Error())
	}

	enc := codec.NewEncoding(v)
	encoded := enc.EncodeToString(in)
	result := &CheckResult{
		Pass:     encoded == def.Encoded,
		Expected: &HashInfo{SHA256: digest.Hash([]byte(def.Encoded))},
		Actual:   &HashInfo{SHA256: digest.Hash([]byte(encoded))},
	}
	if !result.Pass {
		result.Details = map[string]string{"want": def.Encoded, "got": encoded}
		return result, nil
	}

	decoded, err := enc.DecodeString(def.Encoded)
	if err != nil || !bytes.Equal(decoded, in) {
		result.Pass = false
		result.Details = map[string]string{"decode": fmt.Sprintf("got %x, err %v", decoded, err)}
	}
	return result, nil
}

// DefaultPlan creates the built-in plan covering both alphabet versions.
func DefaultPlan() *Plan {
	plan := &Plan{
		ID:          "ecoji-default",
		Description: "Verify alphabet tables, round trips and published vectors",
	}
	boundary := &RoundtripDef{MaxLength: 11, RandomBytes: 1024, Seed: 1}

	for _, v := range alphabet.All() {
		n := v.Number()
		plan.Checks = append(plan.Checks,
			PlanCheck{Type: CheckAlphabetBijection, Label: v.String() + " forward and reverse tables agree", Version: n},
			PlanCheck{Type: CheckPaddingDisjoint, Label: v.String() + " padding is disjoint from symbols", Version: n},
			PlanCheck{Type: CheckRoundtrip, Label: v.String() + " round trip", Version: n, Roundtrip: boundary},
			PlanCheck{Type: CheckCrossVersion, Label: v.String() + " output decodes with the other version", Version: n, Roundtrip: boundary},
			PlanCheck{Type: CheckKnownVector, Label: v.String() + " encodes abc", Version: n,
				KnownVector: &KnownVectorDef{InputHex: "616263", Encoded: "👖📸🎈☕"}},
		)
	}

	plan.Checks = append(plan.Checks,
		PlanCheck{Type: CheckKnownVector, Label: "v1 encodes input data", Version: 1,
			KnownVector: &KnownVectorDef{InputHex: hex.EncodeToString([]byte("input data")), Encoded: "👶😲🇲👅🍉🔙🌥🌩"}},
		PlanCheck{Type: CheckKnownVector, Label: "v1 numbered padding", Version: 1,
			KnownVector: &KnownVectorDef{InputHex: "fefeffff", Encoded: "🧑🦲🧕🙋"}},
	)
	return plan
}
