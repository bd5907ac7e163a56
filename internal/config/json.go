package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type clientJSONConfig struct {
	API struct {
		BaseURL        string   `json:"address"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"api,omitempty"`

	Push struct {
		URL               string   `json:"url"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
		HeartbeatMisses   int      `json:"heartbeat_misses"`
		BackoffBase       Duration `json:"backoff_base"`
		BackoffCap        Duration `json:"backoff_cap"`
		MaxAttempts       int      `json:"max_attempts"`
		QueueSize         int      `json:"queue_size"`
	} `json:"push,omitempty"`

	Cache struct {
		StaleTime       Duration `json:"stale_time"`
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"cache,omitempty"`

	Storage struct {
		SnapshotPath  string   `json:"snapshot_path"`
		FlushInterval Duration `json:"flush_interval"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg clientJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		API: API{
			BaseURL:        jsonCfg.API.BaseURL,
			Token:          jsonCfg.API.Token,
			RequestTimeout: time.Duration(jsonCfg.API.RequestTimeout),
		},
		Push: Push{
			URL:               jsonCfg.Push.URL,
			HeartbeatInterval: time.Duration(jsonCfg.Push.HeartbeatInterval),
			HeartbeatMisses:   jsonCfg.Push.HeartbeatMisses,
			BackoffBase:       time.Duration(jsonCfg.Push.BackoffBase),
			BackoffCap:        time.Duration(jsonCfg.Push.BackoffCap),
			MaxAttempts:       jsonCfg.Push.MaxAttempts,
			QueueSize:         jsonCfg.Push.QueueSize,
		},
		Cache: Cache{
			StaleTime:       time.Duration(jsonCfg.Cache.StaleTime),
			RefreshInterval: time.Duration(jsonCfg.Cache.RefreshInterval),
		},
		Storage: Storage{
			SnapshotPath:  jsonCfg.Storage.SnapshotPath,
			FlushInterval: time.Duration(jsonCfg.Storage.FlushInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
