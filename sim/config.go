// Defines Config, the flat description of a single run: core layout choice,
// queue sizing, the synthetic packet stream's distributions, and the base
// RTT added on top of simulated latency. Loaded from YAML by the CLI layer
// (cmd/config_loader.go); Validate enforces the per-layout core-count
// invariants before any core is built.

package sim

import "fmt"

// StageConfig describes one stage's service-time distribution: "constant",
// "exponential", or (forwarder/application only) "bimodal".
type StageConfig struct {
	Distribution string  `yaml:"distribution"`
	Mean1        int64   `yaml:"mean1"`
	Mean2        int64   `yaml:"mean2,omitempty"`
	Mode         float64 `yaml:"mode,omitempty"`
}

// PacketsConfig describes the synthetic arrival process.
type PacketsConfig struct {
	NrPackets    int     `yaml:"nr_packets"`
	NrFlows      int     `yaml:"nr_flows"`
	Distribution string  `yaml:"distribution"` // "constant" or "exponential"
	Rate         float64 `yaml:"rate"`          // packets/sec
}

// Layout1Config sizes the forwarder+workers layout.
type Layout1Config struct {
	NrWorkerCores int `yaml:"nr_worker_cores"`
}

// Layout2Config sizes the combined-worker layout.
type Layout2Config struct {
	NrWorkerCores int `yaml:"nr_worker_cores"`
}

// Layout3Config sizes the single network-stack-core layout.
type Layout3Config struct {
	NrApplicationCores int `yaml:"nr_application_cores"`
}

// Layout4Config sizes the K-network/M-application layout.
type Layout4Config struct {
	NrNetworkCores     int `yaml:"nr_network_cores"`
	NrApplicationCores int `yaml:"nr_application_cores"`
}

// Config is the complete description of one simulation run.
type Config struct {
	Duration                  int64 `yaml:"duration"`
	QueueSize                 int   `yaml:"queue_size"`
	NrTotalCores              int   `yaml:"nr_total_cores"`
	NrIndirectionTableEntries int   `yaml:"nr_indirection_table_entries"`
	RTTBase                   int64 `yaml:"rtt_base"`

	Layout  int           `yaml:"layout"`
	Layout1 Layout1Config `yaml:"layout1"`
	Layout2 Layout2Config `yaml:"layout2"`
	Layout3 Layout3Config `yaml:"layout3"`
	Layout4 Layout4Config `yaml:"layout4"`

	Packets      PacketsConfig `yaml:"packets"`
	Forwarder    StageConfig   `yaml:"forwarder"`
	NetworkStack StageConfig   `yaml:"network_stack"`
	Application  StageConfig   `yaml:"application"`
}

// Validate checks the startup invariants: a recognized layout id, and
// enough total cores for that layout's role mix.
func (c *Config) Validate() error {
	if c.NrTotalCores <= 0 {
		return fmt.Errorf("nr_total_cores must be > 0, got %d", c.NrTotalCores)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be > 0, got %d", c.QueueSize)
	}
	if c.NrIndirectionTableEntries <= 0 {
		return fmt.Errorf("nr_indirection_table_entries must be > 0, got %d", c.NrIndirectionTableEntries)
	}
	if c.Packets.NrFlows <= 0 {
		return fmt.Errorf("packets.nr_flows must be > 0, got %d", c.Packets.NrFlows)
	}

	switch c.Layout {
	case 1:
		if c.Layout1.NrWorkerCores+1 > c.NrTotalCores {
			return fmt.Errorf("layout1: nr_worker_cores(%d)+1 exceeds nr_total_cores(%d)", c.Layout1.NrWorkerCores, c.NrTotalCores)
		}
	case 2:
		if c.Layout2.NrWorkerCores > c.NrTotalCores {
			return fmt.Errorf("layout2: nr_worker_cores(%d) exceeds nr_total_cores(%d)", c.Layout2.NrWorkerCores, c.NrTotalCores)
		}
	case 3:
		if c.Layout3.NrApplicationCores+1 > c.NrTotalCores {
			return fmt.Errorf("layout3: nr_application_cores(%d)+1 exceeds nr_total_cores(%d)", c.Layout3.NrApplicationCores, c.NrTotalCores)
		}
	case 4:
		if c.Layout4.NrNetworkCores+c.Layout4.NrApplicationCores > c.NrTotalCores {
			return fmt.Errorf("layout4: nr_network_cores(%d)+nr_application_cores(%d) exceeds nr_total_cores(%d)",
				c.Layout4.NrNetworkCores, c.Layout4.NrApplicationCores, c.NrTotalCores)
		}
		if c.Layout4.NrApplicationCores < c.Layout4.NrNetworkCores {
			return fmt.Errorf("layout4: nr_application_cores(%d) must be >= nr_network_cores(%d)",
				c.Layout4.NrApplicationCores, c.Layout4.NrNetworkCores)
		}
		if c.Layout4.NrNetworkCores <= 0 {
			return fmt.Errorf("layout4: nr_network_cores must be > 0, got %d", c.Layout4.NrNetworkCores)
		}
	default:
		return fmt.Errorf("layout must be 1, 2, 3, or 4, got %d", c.Layout)
	}
	return nil
}
