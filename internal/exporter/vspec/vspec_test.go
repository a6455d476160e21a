package vspec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/covesa/s2dm/config"
	"github.com/covesa/s2dm/internal/exporter/vspec"
	"github.com/covesa/s2dm/internal/schematest"
)

const sdl = `
enum VelocityUnit { KILOMETER_PER_HOUR FURLONG_PER_FORTNIGHT }

type Vehicle {
  "Vehicle speed."
  speed(unit: VelocityUnit = KILOMETER_PER_HOUR): Float @range(min: 0, max: 250) @metadata(comment: "c", vssType: "sensor")
  odometer(unit: VelocityUnit = FURLONG_PER_FORTNIGHT): Float
  gear: Gear
  cabin: Cabin
}

"A cabin."
type Cabin {
  doors: [Door]
  temperatures: [Float]
}

type Door {
  instanceTag: InCabinArea2x2
  isOpen: Boolean
}

enum Gear { PARK DRIVE }
`

func translate(t *testing.T, opts vspec.Options) map[string]*vspec.Node {
	return vspec.Translate(schematest.Parse(t, sdl), opts)
}

func TestTranslate(t *testing.T) {
	doc := translate(t, vspec.Options{})

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"Vehicle",
		"Vehicle.speed",
		"Vehicle.odometer",
		"Vehicle.gear",
		"Vehicle.Cabin",
		"Vehicle.Cabin.temperatures",
		"Vehicle.Cabin.Door",
		"Vehicle.Cabin.Door.isOpen",
	}, keys)

	desc := "Vehicle speed."
	assert.Equal(t, &vspec.Node{
		Comment:     "c",
		Datatype:    "float",
		Description: &desc,
		Max:         int64(250),
		Min:         int64(0),
		Type:        "sensor",
		Unit:        "km/h",
	}, doc["Vehicle.speed"])

	t.Run("unknown units are kept", func(t *testing.T) {
		assert.Equal(t, "FURLONG_PER_FORTNIGHT", doc["Vehicle.odometer"].Unit)
		extra := translate(t, vspec.Options{Units: map[string]string{"FURLONG_PER_FORTNIGHT": "fur/ftn"}})
		assert.Equal(t, "fur/ftn", extra["Vehicle.odometer"].Unit)
	})

	t.Run("enum leaf", func(t *testing.T) {
		gear := doc["Vehicle.gear"]
		assert.Equal(t, vspec.FlowList{"PARK", "DRIVE"}, gear.Allowed)
		assert.Equal(t, vspec.Attribute, gear.Type)
		assert.Equal(t, "string", gear.Datatype)
		require.NotNil(t, gear.Description)
		assert.Equal(t, "", *gear.Description)
	})

	t.Run("branches", func(t *testing.T) {
		cabin := doc["Vehicle.Cabin"]
		assert.Equal(t, vspec.Branch, cabin.Type)
		require.NotNil(t, cabin.Description)
		assert.Equal(t, "A cabin.", *cabin.Description)
		assert.Nil(t, doc["Vehicle"].Description)
		assert.Equal(t, []vspec.FlowList{{"ROW1", "ROW2"}, {"DRIVERSIDE", "PASSENGERSIDE"}}, doc["Vehicle.Cabin.Door"].Instances)
	})

	t.Run("list leaf", func(t *testing.T) {
		assert.Equal(t, "float[]", doc["Vehicle.Cabin.temperatures"].Datatype)
	})
}

func TestTranslateNamesInstances(t *testing.T) {
	doc := translate(t, vspec.Options{Naming: config.Naming{config.ElementInstanceTag: {Case: "PascalCase"}}})
	assert.Equal(t, []vspec.FlowList{{"Row1", "Row2"}, {"Driverside", "Passengerside"}}, doc["Vehicle.Cabin.Door"].Instances)
}

func TestExport(t *testing.T) {
	out, err := vspec.Export(schematest.Parse(t, sdl), vspec.Options{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Vehicle:\n  type: branch\n\nVehicle.Cabin:\n"), out)
	assert.Contains(t, out, "  allowed: [PARK, DRIVE]\n")
	assert.Contains(t, out, "[ROW1, ROW2]")
	assert.Contains(t, out, "Vehicle.speed:\n  comment: c\n  datatype: float\n  description: Vehicle speed.\n  max: 250\n  min: 0\n  type: sensor\n  unit: km/h\n")

	var decoded map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 8)
	assert.Equal(t, []interface{}{"PARK", "DRIVE"}, decoded["Vehicle.gear"]["allowed"])
	assert.Equal(t, 250, decoded["Vehicle.speed"]["max"])
}
