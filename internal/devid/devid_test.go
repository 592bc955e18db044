package devid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/event"
)

func TestCompute_DevNumPriority(t *testing.T) {
	cases := []struct {
		name    string
		environ []string
		want    string
	}{
		{"block device", []string{"SUBSYSTEM=block", "MAJOR=8", "MINOR=1"}, "b8:1"},
		{"char device", []string{"SUBSYSTEM=tty", "MAJOR=4", "MINOR=64"}, "c4:64"},
		{
			"devnum wins over ifindex",
			[]string{"SUBSYSTEM=tty", "MAJOR=4", "MINOR=64", "IFINDEX=3"},
			"c4:64",
		},
		{
			"devnum wins over subsystem path",
			[]string{"SUBSYSTEM=block", "MAJOR=8", "MINOR=0", "DEVPATH=/devices/pci0/sda"},
			"b8:0",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Compute(event.FromEnviron(tc.environ))
			require.NoError(t, err)
			require.Equal(t, tc.want, id)
		})
	}
}

func TestCompute_IfIndex(t *testing.T) {
	id, err := Compute(event.FromEnviron([]string{"IFINDEX=3"}))
	require.NoError(t, err)
	require.Equal(t, "n3", id)
}

func TestCompute_SubsystemSysname(t *testing.T) {
	id, err := Compute(event.FromEnviron([]string{
		"SUBSYSTEM=net",
		"DEVPATH=/devices/pci0000:00/0000:00:1f.6/net/eth0",
	}))
	require.NoError(t, err)
	require.Equal(t, "+net:eth0", id)
}

func TestCompute_NotDerivable(t *testing.T) {
	cases := []struct {
		name    string
		environ []string
	}{
		{"empty event", nil},
		{"major without minor", []string{"MAJOR=8"}},
		{"subsystem without devpath", []string{"SUBSYSTEM=usb"}},
		{"devpath without subsystem", []string{"DEVPATH=/devices/foo"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(event.FromEnviron(tc.environ))
			require.Error(t, err)
			require.Equal(t, errors.KindNotDerivable, errors.KindOf(err))
		})
	}
}

func TestCompute_Pure(t *testing.T) {
	ev := event.FromEnviron([]string{"SUBSYSTEM=block", "MAJOR=8", "MINOR=1"})
	first, err := Compute(ev)
	require.NoError(t, err)
	second, err := Compute(ev)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
