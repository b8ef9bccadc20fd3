package dsdneo

import (
	"strings"

	"github.com/jochenvg/go-udev"
)

// DiscoverRTLSDRDevices enumerates attached RTL-SDR dongles via udev,
// replacing the teacher's static serial-port enumeration (this decoder's
// input device is a USB SDR, not a TNC's serial/USB-CDC modem).
func DiscoverRTLSDRDevices() ([]string, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("usb"); err != nil {
		return nil, err
	}
	devices, err := enum.Devices()
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, d := range devices {
		vendor := d.PropertyValue("ID_VENDOR_ID")
		product := d.PropertyValue("ID_MODEL_ID")
		if strings.EqualFold(vendor, "0bda") && (strings.EqualFold(product, "2838") || strings.EqualFold(product, "2832")) {
			paths = append(paths, d.Devnode())
		}
	}
	return paths, nil
}
