// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package scanner

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

var (
	// device `epson2:net:192.168.1.20' is a Epson PID 0x1234 flatbed scanner
	deviceLineRe = regexp.MustCompile("^device `(.+)' is a (.+)$")

	//     --resolution 75|150|300|600dpi [75]
	//     -l 0..215.9mm [0]
	optionLineRe = regexp.MustCompile(`^\s+(-{1,2}[a-zA-Z][-\w]*) (.*?)(?: \[(.*)\])?$`)

	// 0..215.9mm (in steps of 0.1)
	rangeRe = regexp.MustCompile(`^(-?[\d.]+)\.\.(-?[\d.]+)([a-z%]*)(?: \(in steps of ([\d.]+)\))?$`)

	unitSuffixRe = regexp.MustCompile(`^(-?[\d.]+)([a-z%]+)$`)
)

// parseDeviceList parses the output of scanimage -L.
func parseDeviceList(out []byte) []Device {
	var devices []Device
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := deviceLineRe.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		devices = append(devices, Device{ID: m[1], Name: m[2]})
	}
	return devices
}

// parseDeviceFeatures parses the option listing of scanimage -A -d <id>.
func parseDeviceFeatures(out []byte) map[string]Feature {
	features := make(map[string]Feature)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		m := optionLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, spec, def := m[1], strings.TrimSpace(m[2]), m[3]

		f := Feature{
			Text:    strings.TrimSpace(line),
			Default: def,
			Enabled: def != "inactive",
		}
		if def == "inactive" {
			f.Default = ""
		}

		switch {
		case rangeRe.MatchString(spec):
			rm := rangeRe.FindStringSubmatch(spec)
			lo, _ := strconv.ParseFloat(rm[1], 64)
			hi, _ := strconv.ParseFloat(rm[2], 64)
			f.Limits = []float64{lo, hi}
			f.Unit = rm[3]
			if rm[4] != "" {
				f.Interval, _ = strconv.ParseFloat(rm[4], 64)
			}
		case strings.Contains(spec, "|"):
			f.Options, f.Unit = splitOptions(spec)
		}

		features[name] = f
	}
	return features
}

// splitOptions splits "75|150|300dpi" into values and a trailing unit.
func splitOptions(spec string) ([]string, string) {
	parts := strings.Split(spec, "|")
	unit := ""
	if last := unitSuffixRe.FindStringSubmatch(parts[len(parts)-1]); last != nil {
		unit = last[2]
		for i, p := range parts {
			parts[i] = strings.TrimSuffix(p, unit)
		}
	}
	return parts, unit
}

// Resolutions returns the discrete resolutions a device supports, or nil.
func (d Device) Resolutions() []int {
	f, ok := d.Features["--resolution"]
	if !ok {
		return nil
	}
	var out []int
	for _, o := range f.Options {
		if v, err := strconv.Atoi(o); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// MaxArea returns the scan area width and height in millimetres, taken from the
// upper limits of -x and -y. Zero when the device does not report them.
func (d Device) MaxArea() (width, height float64) {
	if f, ok := d.Features["-x"]; ok && len(f.Limits) == 2 {
		width = f.Limits[1]
	}
	if f, ok := d.Features["-y"]; ok && len(f.Limits) == 2 {
		height = f.Limits[1]
	}
	return width, height
}
