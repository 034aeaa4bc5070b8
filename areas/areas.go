package areas

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed areas.yaml
var defaultYAML []byte

// District คือ kecamatan พร้อมรายชื่อ desa
type District struct {
	Name     string   `yaml:"name" json:"name"`
	Villages []string `yaml:"villages" json:"villages"`
}

// Hierarchy คือข้อมูลอ้างอิง region -> district -> village (อ่านอย่างเดียว)
type Hierarchy struct {
	Region    string     `yaml:"region" json:"region"`
	Districts []District `yaml:"districts" json:"districts"`

	index map[string]map[string]string // district key -> village key -> ชื่อที่ถูกต้อง
	names map[string]int
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Parse อ่าน YAML แล้วสร้าง index แบบไม่สนตัวพิมพ์
func Parse(data []byte) (*Hierarchy, error) {
	var h Hierarchy
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse areas: %w", err)
	}
	if len(h.Districts) == 0 {
		return nil, errors.New("parse areas: no districts defined")
	}
	h.index = make(map[string]map[string]string, len(h.Districts))
	h.names = make(map[string]int, len(h.Districts))
	for i, d := range h.Districts {
		k := key(d.Name)
		if k == "" {
			return nil, fmt.Errorf("parse areas: district #%d has no name", i+1)
		}
		if _, dup := h.index[k]; dup {
			return nil, fmt.Errorf("parse areas: duplicate district %q", d.Name)
		}
		villages := make(map[string]string, len(d.Villages))
		for _, v := range d.Villages {
			villages[key(v)] = strings.TrimSpace(v)
		}
		h.index[k] = villages
		h.names[k] = i
	}
	return &h, nil
}

func Load(r io.Reader) (*Hierarchy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadFile โหลดจากไฟล์; path ว่างใช้ชุดข้อมูลที่ฝังมากับ binary
func LoadFile(path string) (*Hierarchy, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func Default() (*Hierarchy, error) {
	return Parse(defaultYAML)
}

func (h *Hierarchy) HasDistrict(district string) bool {
	_, ok := h.index[key(district)]
	return ok
}

// Contains = village อยู่ใน district นี้จริง
func (h *Hierarchy) Contains(district, village string) bool {
	_, _, ok := h.Canonical(district, village)
	return ok
}

// CanonicalDistrict คืนชื่อ district ตามที่สะกดในข้อมูลอ้างอิง
func (h *Hierarchy) CanonicalDistrict(district string) (string, bool) {
	i, ok := h.names[key(district)]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(h.Districts[i].Name), true
}

// Canonical คืนชื่อ district/village ตามข้อมูลอ้างอิง ไม่ว่าผู้เรียกจะพิมพ์เล็กใหญ่แบบไหน
func (h *Hierarchy) Canonical(district, village string) (string, string, bool) {
	d, ok := h.CanonicalDistrict(district)
	if !ok {
		return "", "", false
	}
	v, ok := h.index[key(district)][key(village)]
	if !ok {
		return "", "", false
	}
	return d, v, true
}

// District คืนข้อมูล district ตามชื่อ
func (h *Hierarchy) District(name string) (District, bool) {
	i, ok := h.names[key(name)]
	if !ok {
		return District{}, false
	}
	return h.Districts[i], true
}
