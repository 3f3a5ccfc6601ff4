package serverconfig

import (
	"context"
	"testing"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"
)

func TestDefaultOptionsMatchSpec(t *testing.T) {
	got := DefaultOptions()

	if got.PingInterval != 25000 {
		t.Errorf("PingInterval = %d, want 25000", got.PingInterval)
	}
	if got.PingTimeout != 20000 {
		t.Errorf("PingTimeout = %d, want 20000", got.PingTimeout)
	}
	if got.UpgradeTimeout != 10000 {
		t.Errorf("UpgradeTimeout = %d, want 10000", got.UpgradeTimeout)
	}
	if got.MaxBufferSize != 100000 {
		t.Errorf("MaxBufferSize = %d, want 100000", got.MaxBufferSize)
	}
	if !got.AllowUpgrades {
		t.Error("AllowUpgrades = false, want true")
	}
	if got.Path != "/engine.io" {
		t.Errorf("Path = %q, want /engine.io", got.Path)
	}
	if !got.DestroyUpgrade {
		t.Error("DestroyUpgrade = false, want true")
	}
	if got.DestroyUpgradeTimeout != 1000 {
		t.Errorf("DestroyUpgradeTimeout = %d, want 1000", got.DestroyUpgradeTimeout)
	}
	if !got.AddTrailingSlash {
		t.Error("AddTrailingSlash = false, want true")
	}
	if len(got.Transports) != 3 {
		t.Errorf("Transports = %v, want 3 entries", got.Transports)
	}
}

func TestFlagsResolveToDefaultsWhenUnset(t *testing.T) {
	cmd := &cli.Command{
		Name:  "test",
		Flags: Flags(altsrc.StringSourcer("")),
		Action: func(_ context.Context, cmd *cli.Command) error {
			got := FromCommand(cmd)
			if got.PingInterval != DefaultPingInterval {
				t.Errorf("PingInterval = %d, want %d", got.PingInterval, DefaultPingInterval)
			}
			if got.Path != DefaultPath {
				t.Errorf("Path = %q, want %q", got.Path, DefaultPath)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
		t.Fatalf("cmd.Run: %v", err)
	}
}

func TestFlagsHonorExplicitOverride(t *testing.T) {
	cmd := &cli.Command{
		Name:  "test",
		Flags: Flags(altsrc.StringSourcer("")),
		Action: func(_ context.Context, cmd *cli.Command) error {
			got := FromCommand(cmd)
			if got.PingInterval != 5000 {
				t.Errorf("PingInterval = %d, want 5000", got.PingInterval)
			}
			if got.Path != "/custom" {
				t.Errorf("Path = %q, want /custom", got.Path)
			}
			return nil
		},
	}

	args := []string{"test", "--ping-interval", "5000", "--path", "/custom"}
	if err := cmd.Run(context.Background(), args); err != nil {
		t.Fatalf("cmd.Run: %v", err)
	}
}

func TestValidatePositiveRejectsNonPositive(t *testing.T) {
	if err := validatePositive(0); err == nil {
		t.Error("expected error for 0")
	}
	if err := validatePositive(-1); err == nil {
		t.Error("expected error for negative value")
	}
	if err := validatePositive(1); err != nil {
		t.Errorf("unexpected error for positive value: %v", err)
	}
}
