package config

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Run                  bool              `json:"run"`
	Sensitivity          float64           `json:"sensitivity"`
	GyroscopeSensitivity float64           `json:"gyroscopeSensitivity"`
	Gyroscope            bool              `json:"gyroscope"`
	GyroscopeAxesSwap    int               `json:"gyroscopeAxesSwap"`
	SwapGamepadSticks    bool              `json:"swapGamepadSticks"`
	TouchControls        int               `json:"touchControls"`
	InputProfile         int               `json:"inputProfile"`
	MaxPackets           int               `json:"maxPackets"`
	PacketDup            int               `json:"packetDup"`
	LANForcePackets      bool              `json:"lanForcePackets"`
	RailgunAutoZoom      bool              `json:"railgunAutoZoom"`
	Bindings             map[string]string `json:"bindings,omitempty"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if data == nil {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// Snapshot captures the persisted subset of c.
func Snapshot(c *ClientConfig, bindings map[int]string) *SavedSettings {
	s := &SavedSettings{
		Run:                  c.Run,
		Sensitivity:          c.Sensitivity,
		GyroscopeSensitivity: c.GyroscopeSensitivity,
		Gyroscope:            c.Gyroscope,
		GyroscopeAxesSwap:    c.GyroscopeAxesSwap,
		SwapGamepadSticks:    c.SwapGamepadSticks,
		TouchControls:        int(c.TouchControls),
		InputProfile:         int(c.InputProfile),
		MaxPackets:           c.MaxPackets,
		PacketDup:            c.PacketDup,
		LANForcePackets:      c.LANForcePackets,
		RailgunAutoZoom:      c.RailgunAutoZoom,
	}
	if len(bindings) > 0 {
		s.Bindings = make(map[string]string, len(bindings))
		for k, cmd := range bindings {
			s.Bindings[KeyName(k)] = cmd
		}
	}
	return s
}

// ApplySavedSettings copies saved values into c and bindings. Packet
// tunables go through the clamping setters.
func ApplySavedSettings(c *ClientConfig, bindings map[int]string, saved *SavedSettings) {
	if saved == nil {
		return
	}

	c.Run = saved.Run
	c.Sensitivity = saved.Sensitivity
	c.GyroscopeSensitivity = saved.GyroscopeSensitivity
	c.Gyroscope = saved.Gyroscope
	c.GyroscopeAxesSwap = saved.GyroscopeAxesSwap
	c.SwapGamepadSticks = saved.SwapGamepadSticks
	c.TouchControls = TouchControls(saved.TouchControls)
	c.InputProfile = InputProfile(saved.InputProfile)
	c.LANForcePackets = saved.LANForcePackets
	c.RailgunAutoZoom = saved.RailgunAutoZoom
	c.SetMaxPackets(saved.MaxPackets)
	c.SetPacketDup(saved.PacketDup)

	if bindings == nil {
		return
	}
	for name, cmd := range saved.Bindings {
		k, ok := KeyByName(name)
		if !ok {
			log.Printf("Warning: Unknown key %q in saved bindings", name)
			continue
		}
		bindings[k] = cmd
	}
}
