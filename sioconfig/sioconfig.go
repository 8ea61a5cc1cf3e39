// Package sioconfig loads a sioclient.Config from a YAML file on disk.
// spec.md §1 names configuration loading as an external collaborator the
// core does not implement; this package is the concrete instance a host
// program actually uses, grounded in the same yaml.v3-based loader shape
// the rest of this module's donor corpus uses for its own config files.
package sioconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sioclient "github.com/zweieuro/go-sioclient"
)

// File is the on-disk shape of a client's configuration. It maps 1:1
// onto sioclient.Config's exported option fields (minus the in-process
// collaborators — Doer, Logger, AllocAuthBodyCB — which cannot be
// expressed in YAML and are left for the host program to set after
// loading).
type File struct {
	EIOVersion    uint8  `yaml:"eio_version"`
	Transport     string `yaml:"transport"`
	BaseMAC       string `yaml:"base_mac"`
	ServerAddress string `yaml:"server_address"`
	SIOURLPath    string `yaml:"sio_url_path"`
	Namespace     string `yaml:"namespace"`

	RecordSeparator   *int  `yaml:"record_separator"`
	RebuildPostClient *bool `yaml:"rebuild_post_client"`
}

// Load reads and parses a YAML config file at path into a
// sioclient.Config. It does not populate Doer, Logger or
// AllocAuthBodyCB; set those on the returned value as needed before
// passing it to Manager.Init.
func Load(path string) (sioclient.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return sioclient.Config{}, fmt.Errorf("sioconfig: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return sioclient.Config{}, fmt.Errorf("sioconfig: parsing %s: %w", path, err)
	}

	cfg := sioclient.Config{
		EIOVersion:    f.EIOVersion,
		BaseMAC:       f.BaseMAC,
		ServerAddress: f.ServerAddress,
		SIOURLPath:    f.SIOURLPath,
		Namespace:     f.Namespace,
	}

	switch f.Transport {
	case "", "polling":
		cfg.Transport = sioclient.TransportPolling
	case "websockets":
		cfg.Transport = sioclient.TransportWebsocket
	default:
		return sioclient.Config{}, fmt.Errorf("sioconfig: unknown transport %q", f.Transport)
	}

	if f.RecordSeparator != nil {
		if *f.RecordSeparator < 0 || *f.RecordSeparator > 255 {
			return sioclient.Config{}, fmt.Errorf("sioconfig: record_separator out of byte range: %d", *f.RecordSeparator)
		}
		cfg.RecordSeparator = byte(*f.RecordSeparator)
	}
	cfg.RebuildPostClient = f.RebuildPostClient

	return cfg, nil
}
