package level

import (
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

const exampleLevel = `{"scroll_speed": 360, "floor_y": 120, "player_x": 220, "default_obstacle_width": 30, "obstacles": [{"gap": 300, "width": 28}, {"gap": 260, "width": 30}]}`

func TestParseExampleLevel(t *testing.T) {
	spec, err := Parse([]byte(exampleLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if spec.ScrollSpeed() != 360 || spec.FloorY() != 120 || spec.PlayerX() != 220 {
		t.Errorf("unexpected globals: speed=%g floor=%g player=%g",
			spec.ScrollSpeed(), spec.FloorY(), spec.PlayerX())
	}

	placements := spec.Placements()
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}
	if placements[0].X != 300 || placements[0].Width != 28 {
		t.Errorf("first placement = %+v, expected X=300 Width=28", placements[0])
	}
	if placements[1].X != 588 || placements[1].Width != 30 {
		t.Errorf("second placement = %+v, expected X=588 Width=30", placements[1])
	}
	if spec.Length() != 618 {
		t.Errorf("Length() = %g, expected 618", spec.Length())
	}
}

func TestParseNegativeGap(t *testing.T) {
	_, err := Parse([]byte(`{"scroll_speed": 360, "floor_y": 120, "player_x": 220, "obstacles": [{"gap": -5}]}`))
	if !IsKind(err, KindRange) {
		t.Fatalf("expected RangeError, got %v", err)
	}
	if PathOf(err) != "obstacles[0].gap" {
		t.Errorf("expected path obstacles[0].gap, got %q", PathOf(err))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		path  string
	}{
		{"syntax error", `{"scroll_speed": 360,`, KindParse, "$"},
		{"empty document", ``, KindParse, "$"},
		{"trailing value", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0} {}`, KindParse, "$"},
		{"array top level", `[1, 2, 3]`, KindSchema, "$"},
		{"string top level", `"level"`, KindSchema, "$"},
		{"null top level", `null`, KindSchema, "$"},
		{"missing scroll_speed", `{"floor_y": 120, "player_x": 220}`, KindSchema, "scroll_speed"},
		{"missing floor_y", `{"scroll_speed": 1, "player_x": 220}`, KindSchema, "floor_y"},
		{"missing player_x", `{"scroll_speed": 1, "floor_y": 0}`, KindSchema, "player_x"},
		{"missing keys reported before bad types", `{"scroll_speed": "fast", "floor_y": 0}`, KindSchema, "player_x"},
		{"string scroll_speed", `{"scroll_speed": "fast", "floor_y": 0, "player_x": 0}`, KindSchema, "scroll_speed"},
		{"zero scroll_speed", `{"scroll_speed": 0, "floor_y": 0, "player_x": 0}`, KindRange, "scroll_speed"},
		{"negative scroll_speed", `{"scroll_speed": -10, "floor_y": 0, "player_x": 0}`, KindRange, "scroll_speed"},
		{"huge scroll_speed", `{"scroll_speed": 1e400, "floor_y": 0, "player_x": 0}`, KindRange, "scroll_speed"},
		{"boolean floor_y", `{"scroll_speed": 1, "floor_y": true, "player_x": 0}`, KindSchema, "floor_y"},
		{"negative floor_y", `{"scroll_speed": 1, "floor_y": -1, "player_x": 0}`, KindRange, "floor_y"},
		{"negative player_x", `{"scroll_speed": 1, "floor_y": 0, "player_x": -3}`, KindRange, "player_x"},
		{"zero default width", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "default_obstacle_width": 0}`, KindRange, "default_obstacle_width"},
		{"null default width", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "default_obstacle_width": null}`, KindSchema, "default_obstacle_width"},
		{"obstacles not array", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": {}}`, KindSchema, "obstacles"},
		{"obstacles null", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": null}`, KindSchema, "obstacles"},
		{"obstacle not object", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": [240]}`, KindSchema, "obstacles[0]"},
		{"obstacle missing gap", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": [{"gap": 1}, {"width": 3}]}`, KindSchema, "obstacles[1].gap"},
		{"obstacle string width", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": [{"gap": 1, "width": "wide"}]}`, KindSchema, "obstacles[0].width"},
		{"obstacle negative width", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": [{"gap": 1, "width": -2}]}`, KindRange, "obstacles[0].width"},
		{"obstacle zero width", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": [{"gap": 1, "width": 0}]}`, KindRange, "obstacles[0].width"},
		{"name not string", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "name": 7}`, KindSchema, "name"},
		{"coin missing y", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "coins": [{"x": 5}]}`, KindSchema, "coins[0].y"},
		{"coin negative x", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "coins": [{"x": -5, "y": 1}]}`, KindRange, "coins[0].x"},
		{"portal zero speed", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "speed_portals": [{"x": 5, "speed": 0}]}`, KindRange, "speed_portals[0].speed"},
		{"portal missing speed", `{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "speed_portals": [{"x": 5}]}`, KindSchema, "speed_portals[0].speed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := Parse([]byte(tc.input))
			if err == nil {
				t.Fatalf("expected %s, got valid spec %+v", tc.kind, spec)
			}
			if spec != nil {
				t.Error("failed parse must not return a partial spec")
			}

			var le *Error
			if !errors.As(err, &le) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if le.Kind != tc.kind {
				t.Errorf("Kind = %s, expected %s (%v)", le.Kind, tc.kind, err)
			}
			if le.Path != tc.path {
				t.Errorf("Path = %q, expected %q", le.Path, tc.path)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	spec, err := Parse([]byte(`{"scroll_speed": 200, "floor_y": 0, "player_x": 0, "obstacles": [{"gap": 10}, {"gap": 5, "width": 12}]}`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if spec.DefaultObstacleWidth() != DefaultObstacleWidth {
		t.Errorf("DefaultObstacleWidth() = %g, expected %g", spec.DefaultObstacleWidth(), DefaultObstacleWidth)
	}

	obstacles := spec.Obstacles()
	if obstacles[0].Width != DefaultObstacleWidth {
		t.Errorf("omitted width should resolve to %g, got %g", DefaultObstacleWidth, obstacles[0].Width)
	}
	if obstacles[1].Width != 12 {
		t.Errorf("explicit width should be kept, got %g", obstacles[1].Width)
	}
}

func TestParseCustomDefaultWidth(t *testing.T) {
	spec, err := Parse([]byte(`{"scroll_speed": 200, "floor_y": 0, "player_x": 0, "default_obstacle_width": 44, "obstacles": [{"gap": 10}]}`))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got := spec.Obstacles()[0].Width; got != 44 {
		t.Errorf("omitted width should resolve to default_obstacle_width 44, got %g", got)
	}
}

func TestParseEmptyObstacles(t *testing.T) {
	inputs := []string{
		`{"scroll_speed": 1, "floor_y": 0, "player_x": 0}`,
		`{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "obstacles": []}`,
	}

	for _, input := range inputs {
		spec, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", input, err)
		}
		if spec.Obstacles() == nil {
			t.Error("Obstacles() must never be nil")
		}
		if spec.Len() != 0 || len(spec.Placements()) != 0 {
			t.Errorf("expected empty level, got %d obstacles", spec.Len())
		}
		if spec.Length() != WorldOrigin {
			t.Errorf("Length() of empty level = %g, expected origin", spec.Length())
		}
	}
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(`{"scroll_speed": 1, "floor_y": 0, "player_x": 0, "music": "theme.ogg"}`))
	if err != nil {
		t.Errorf("unknown keys should be ignored, got %v", err)
	}
}

func TestParseIdempotent(t *testing.T) {
	a, err := Parse([]byte(exampleLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	b, err := Parse([]byte(exampleLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if a == b {
		t.Fatal("each call should build a fresh spec")
	}
	if a.ScrollSpeed() != b.ScrollSpeed() || a.FloorY() != b.FloorY() || a.PlayerX() != b.PlayerX() {
		t.Error("globals differ between loads")
	}
	pa, pb := a.Placements(), b.Placements()
	if len(pa) != len(pb) {
		t.Fatalf("placement counts differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Errorf("placement %d differs: %+v vs %+v", i, pa[i], pb[i])
		}
	}
}

func TestSpecAccessorsReturnCopies(t *testing.T) {
	spec, err := Parse([]byte(exampleLevel))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	obstacles := spec.Obstacles()
	obstacles[0].Gap = 9999
	placements := spec.Placements()
	placements[0].X = -1

	if spec.Obstacles()[0].Gap != 300 {
		t.Error("mutating Obstacles() result changed the spec")
	}
	if spec.Placements()[0].X != 300 {
		t.Error("mutating Placements() result changed the spec")
	}
}

func TestLoadFiles(t *testing.T) {
	spec, err := Load(filepath.Join("testdata", "example.json"))
	if err != nil {
		t.Fatalf("Load(json) failed: %v", err)
	}
	if spec.Placements()[1].X != 588 {
		t.Errorf("expected second edge at 588, got %g", spec.Placements()[1].X)
	}

	ySpec, err := Load(filepath.Join("testdata", "example.yaml"))
	if err != nil {
		t.Fatalf("Load(yaml) failed: %v", err)
	}
	if ySpec.Name() != "YAML Example" {
		t.Errorf("Name() = %q", ySpec.Name())
	}
	if ySpec.Obstacles()[1].Width != 30 {
		t.Errorf("YAML obstacle should default to width 30, got %g", ySpec.Obstacles()[1].Width)
	}
	if len(ySpec.Coins()) != 1 || ySpec.Coins()[0].Y != 40 {
		t.Errorf("unexpected coins: %+v", ySpec.Coins())
	}
	if len(ySpec.SpeedPortals()) != 1 || ySpec.SpeedPortals()[0].Speed != 420 {
		t.Errorf("unexpected portals: %+v", ySpec.SpeedPortals())
	}
}

func TestLoadTruncatedFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "truncated.json"))
	if !IsKind(err, KindParse) {
		t.Errorf("expected ParseError for truncated file, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped fs.ErrNotExist, got %v", err)
	}
	var le *Error
	if errors.As(err, &le) {
		t.Error("I/O failures should not be reported as level errors")
	}
}

func TestDecodeReader(t *testing.T) {
	spec, err := Decode(strings.NewReader(exampleLevel), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if spec.Len() != 2 {
		t.Errorf("expected 2 obstacles, got %d", spec.Len())
	}
}

func TestYAMLNonFinite(t *testing.T) {
	_, err := ParseFormat([]byte("scroll_speed: .inf\nfloor_y: 0\nplayer_x: 0\n"), FormatYAML)
	if !IsKind(err, KindRange) || PathOf(err) != "scroll_speed" {
		t.Errorf("expected RangeError at scroll_speed, got %v", err)
	}
}

func TestYAMLSchemaErrors(t *testing.T) {
	_, err := ParseFormat([]byte("- 1\n- 2\n"), FormatYAML)
	if !IsKind(err, KindSchema) {
		t.Errorf("expected SchemaError for YAML sequence, got %v", err)
	}

	_, err = ParseFormat([]byte("scroll_speed: [1\n"), FormatYAML)
	if !IsKind(err, KindParse) {
		t.Errorf("expected ParseError for malformed YAML, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"level1.json":       FormatJSON,
		"level1.JSON":       FormatJSON,
		"levels/a.yaml":     FormatYAML,
		"levels/b.YML":      FormatYAML,
		"no-extension":      FormatJSON,
		"weird.level.jsonc": FormatJSON,
	}
	for path, expected := range tests {
		if got := FormatFromPath(path); got != expected {
			t.Errorf("FormatFromPath(%q) = %s, expected %s", path, got, expected)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := Parse([]byte(`{"scroll_speed": 0, "floor_y": 0, "player_x": 0}`))
	msg := err.Error()
	if !strings.Contains(msg, "RangeError") || !strings.Contains(msg, "scroll_speed") {
		t.Errorf("error message should name kind and field, got %q", msg)
	}
}

func TestRequireNumberTypes(t *testing.T) {
	for _, v := range []any{int(3), int64(3), uint64(3), float64(3)} {
		got, err := requireNumber(v, "x")
		if err != nil || got != 3 {
			t.Errorf("requireNumber(%T) = %g, %v", v, got, err)
		}
	}
	if _, err := requireNumber(math.NaN(), "x"); !IsKind(err, KindRange) {
		t.Errorf("NaN should be a RangeError, got %v", err)
	}
}
