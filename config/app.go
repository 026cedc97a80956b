package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// PhonePepper 手机号盲索引的 Pepper，环境间不可复用
	PhonePepper string `json:"phone_pepper" yaml:"phone_pepper"`
	// MemberLookupScanCap 旧数据（无 phone_hash）线性回退扫描上限
	MemberLookupScanCap int `json:"member_lookup_scan_cap" yaml:"member_lookup_scan_cap"`
}
