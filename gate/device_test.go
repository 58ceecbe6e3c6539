package gate_test

import (
	"testing"

	"github.com/jrsteele09/go-console-gateway/gate"
	"github.com/stretchr/testify/require"
)

func TestClassifyDevice(t *testing.T) {
	tests := map[string]struct {
		ua   string
		want gate.DeviceType
	}{
		"empty": {"", gate.DeviceDesktop},
		"desktop chrome": {
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			gate.DeviceDesktop,
		},
		"iphone": {
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
			gate.DeviceMobile,
		},
		"android phone": {
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Mobile Safari/537.36",
			gate.DeviceMobile,
		},
		"ipad": {
			"Mozilla/5.0 (iPad; CPU OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
			gate.DeviceTablet,
		},
		"android tablet": {
			"Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			gate.DeviceTablet,
		},
		"googlebot": {
			"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			gate.DeviceBot,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tt.want, gate.ClassifyDevice(tt.ua))
		})
	}
}
