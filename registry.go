package threatscope

// ScenarioID identifies one threat scenario on the architecture diagram.
type ScenarioID string

const (
	ThreatDDoS           ScenarioID = "ddos"
	ThreatPortalHack     ScenarioID = "hack"
	ThreatSpoofing       ScenarioID = "spoofing"
	ThreatEavesdrop      ScenarioID = "eavesdrop"
	ThreatVirtualization ScenarioID = "virtualization"
)

// ProtectionKind names the countermeasure that defeats a scenario.
type ProtectionKind string

const (
	ProtectionFirewall   ProtectionKind = "firewall"
	ProtectionWAF        ProtectionKind = "waf"
	ProtectionSBC        ProtectionKind = "sbc"
	ProtectionEncryption ProtectionKind = "encryption"
	ProtectionHypervisor ProtectionKind = "hypervisor"
)

// ProtectionStyle is how a shield for a ProtectionKind is drawn.
type ProtectionStyle struct {
	Text  string
	Color Color
}

// ScenarioDefinition describes one scenario. Definitions are built once at
// package initialization and never mutated.
type ScenarioDefinition struct {
	ID          ScenarioID
	Label       string // threat button caption
	Tooltip     string
	ButtonColor Color
	Source      Vec2
	SourceText  string
	Targets     []Vec2
	TargetText  string
	Protection  ProtectionKind
}

// Anchor is where the shield is drawn: the threat origin.
func (d *ScenarioDefinition) Anchor() Vec2 {
	return d.Source
}

// Diagram palette.
var (
	colorAttack        = MustHex("#e74c3c")
	colorAttackOutline = MustHex("#c0392b")
	colorWarning       = MustHex("#f39c12")
	colorShieldOutline = MustHex("#27ae60")
	colorPerimeter     = MustHex("#2ecc71")
	colorSuccess       = MustHex("#27ae60")
)

var protectionStyles = map[ProtectionKind]ProtectionStyle{
	ProtectionFirewall:   {Text: "NGFW\nЗащита", Color: MustHex("#2ecc71")},
	ProtectionWAF:        {Text: "WAF\nБлокировка", Color: MustHex("#3498db")},
	ProtectionSBC:        {Text: "SBC\nВалидация", Color: MustHex("#9b59b6")},
	ProtectionEncryption: {Text: "Шифрование\nSRTP/TLS", Color: MustHex("#f1c40f")},
	ProtectionHypervisor: {Text: "Гипервизор\nЗащита", Color: MustHex("#1abc9c")},
}

var defaultProtectionStyle = ProtectionStyle{Text: "Защита", Color: MustHex("#2ecc71")}

// StyleFor returns the shield style for kind, falling back to a generic
// green shield for unknown kinds.
func StyleFor(kind ProtectionKind) ProtectionStyle {
	if s, ok := protectionStyles[kind]; ok {
		return s
	}
	return defaultProtectionStyle
}

var scenarioOrder = []ScenarioID{
	ThreatDDoS,
	ThreatPortalHack,
	ThreatSpoofing,
	ThreatEavesdrop,
	ThreatVirtualization,
}

var scenarios = map[ScenarioID]*ScenarioDefinition{
	ThreatDDoS: {
		ID:          ThreatDDoS,
		Label:       "DDoS атаки",
		Tooltip:     "Атака на доступность сервисов",
		ButtonColor: MustHex("#e74c3c"),
		Source:      Vec2{600, 100},
		SourceText:  "DDoS\nАтака",
		Targets:     []Vec2{{800, 200}, {1000, 200}},
		TargetText:  "Сервер",
		Protection:  ProtectionFirewall,
	},
	ThreatPortalHack: {
		ID:          ThreatPortalHack,
		Label:       "Взлом портала",
		Tooltip:     "Взлом веб-интерфейсов управления",
		ButtonColor: MustHex("#e67e22"),
		Source:      Vec2{800, 150},
		SourceText:  "Взлом\nПортала",
		Targets:     []Vec2{{900, 250}},
		TargetText:  "Веб-портал",
		Protection:  ProtectionWAF,
	},
	ThreatSpoofing: {
		ID:          ThreatSpoofing,
		Label:       "Подмена номера",
		Tooltip:     "Caller ID спуфинг для vishing-атак",
		ButtonColor: MustHex("#f1c40f"),
		Source:      Vec2{1000, 100},
		SourceText:  "Подмена\nНомера",
		Targets:     []Vec2{{1100, 150}},
		TargetText:  "SIP\nСервер",
		Protection:  ProtectionSBC,
	},
	ThreatEavesdrop: {
		ID:          ThreatEavesdrop,
		Label:       "Перехват трафика",
		Tooltip:     "Прослушивание голосовых разговоров",
		ButtonColor: MustHex("#3498db"),
		Source:      Vec2{500, 100},
		SourceText:  "Перехват\nТрафика",
		Targets:     []Vec2{{600, 200}, {700, 200}},
		TargetText:  "RTP\nПоток",
		Protection:  ProtectionEncryption,
	},
	ThreatVirtualization: {
		ID:          ThreatVirtualization,
		Label:       "Атака на виртуализацию",
		Tooltip:     "Компрометация гипервизора KVM",
		ButtonColor: MustHex("#9b59b6"),
		Source:      Vec2{1100, 150},
		SourceText:  "Атака на\nВиртуализацию",
		Targets:     []Vec2{{900, 250}},
		TargetText:  "Гипервизор",
		Protection:  ProtectionHypervisor,
	},
}

// Lookup returns the definition for id.
func Lookup(id ScenarioID) (*ScenarioDefinition, bool) {
	d, ok := scenarios[id]
	return d, ok
}

// Scenarios returns every definition in button order. The returned slice is
// freshly allocated; the definitions themselves MUST NOT be mutated.
func Scenarios() []*ScenarioDefinition {
	out := make([]*ScenarioDefinition, len(scenarioOrder))
	for i, id := range scenarioOrder {
		out[i] = scenarios[id]
	}
	return out
}
