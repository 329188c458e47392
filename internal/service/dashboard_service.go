package service

import "go.uber.org/zap"

// The dashboard serves static sample data. None of it is computed; the
// console renders it as-is.

// OverviewStat is a headline metric card.
type OverviewStat struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

// TrafficSample is one point of the upload/download series (Mbps).
type TrafficSample struct {
	Time     string `json:"time"`
	Upload   int    `json:"upload"`
	Download int    `json:"download"`
}

// DeviceShare is one slice of the device mix chart.
type DeviceShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// BlockEvent is a blocked threat entry.
type BlockEvent struct {
	ID          int    `json:"id"`
	IP          string `json:"ip"`
	User        string `json:"user"`
	Threat      string `json:"threat"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Time        string `json:"time"`
	Date        string `json:"date"`
	Action      string `json:"action"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Port        string `json:"port"`
}

// SecurityLog is a security log entry.
type SecurityLog struct {
	ID          int    `json:"id"`
	Timestamp   string `json:"timestamp"`
	Level       string `json:"level"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Action      string `json:"action"`
	Details     string `json:"details"`
}

// ConnectedDevice is a connected client entry.
type ConnectedDevice struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Device    string `json:"device"`
	IP        string `json:"ip"`
	MAC       string `json:"mac"`
	Status    string `json:"status"`
	Connected string `json:"connected"`
	Duration  string `json:"duration"`
	Bandwidth string `json:"bandwidth"`
	Location  string `json:"location"`
	Type      string `json:"type"`
}

// OverviewResponse bundles the overview page data.
type OverviewResponse struct {
	Stats        []OverviewStat  `json:"stats"`
	Traffic      []TrafficSample `json:"traffic"`
	DeviceMix    []DeviceShare   `json:"deviceMix"`
	RecentBlocks []BlockEvent    `json:"recentBlocks"`
}

// DashboardService serves the mocked analytics views.
type DashboardService struct {
	logger *zap.Logger
}

func NewDashboardService(logger *zap.Logger) *DashboardService {
	return &DashboardService{logger: logger}
}

// Overview returns the headline stats, traffic series, device mix, and the
// most recent blocks.
func (s *DashboardService) Overview() OverviewResponse {
	return OverviewResponse{
		Stats: []OverviewStat{
			{Title: "Connected Users", Value: "147", Change: "+12%", Trend: "up"},
			{Title: "Blocks Today", Value: "23", Change: "-8%", Trend: "down"},
			{Title: "Traffic", Value: "2.4TB", Change: "+15%", Trend: "up"},
			{Title: "Threats Detected", Value: "5", Change: "-50%", Trend: "down"},
		},
		Traffic:   s.Traffic(),
		DeviceMix: s.deviceMix(),
		RecentBlocks: []BlockEvent{
			{ID: 1, IP: "192.168.1.45", Category: "Malware", Severity: "high", Time: "14:32"},
			{ID: 2, IP: "192.168.1.67", Category: "Phishing", Severity: "medium", Time: "14:28"},
			{ID: 3, IP: "192.168.1.123", Category: "Spam", Severity: "low", Time: "14:25"},
			{ID: 4, IP: "192.168.1.89", Category: "Botnet", Severity: "high", Time: "14:20"},
		},
	}
}

// Traffic returns the upload/download series.
func (s *DashboardService) Traffic() []TrafficSample {
	return []TrafficSample{
		{Time: "00:00", Upload: 120, Download: 280},
		{Time: "04:00", Upload: 80, Download: 180},
		{Time: "08:00", Upload: 220, Download: 420},
		{Time: "12:00", Upload: 350, Download: 580},
		{Time: "16:00", Upload: 280, Download: 480},
		{Time: "20:00", Upload: 190, Download: 320},
	}
}

func (s *DashboardService) deviceMix() []DeviceShare {
	return []DeviceShare{
		{Name: "Smartphones", Value: 45},
		{Name: "Laptops", Value: 30},
		{Name: "IoT", Value: 15},
		{Name: "Other", Value: 10},
	}
}

// Blocks returns the blocked threat report.
func (s *DashboardService) Blocks() []BlockEvent {
	return []BlockEvent{
		{ID: 1, IP: "192.168.1.45", User: "Joao Silva", Threat: "Malware - Trojan.Win32", Category: "Malware", Severity: "high", Time: "14:32:15", Date: "2024-07-02", Action: "blocked", Source: "External", Destination: "malicious-site.com", Port: "443"},
		{ID: 2, IP: "192.168.1.67", User: "Maria Santos", Threat: "Phishing - Fake Bank", Category: "Phishing", Severity: "medium", Time: "14:28:42", Date: "2024-07-02", Action: "blocked", Source: "External", Destination: "fake-bank.net", Port: "80"},
		{ID: 3, IP: "192.168.1.89", User: "Pedro Costa", Threat: "Spam - Email Bot", Category: "Spam", Severity: "low", Time: "14:25:33", Date: "2024-07-02", Action: "blocked", Source: "Internal", Destination: "smtp.spammer.com", Port: "25"},
		{ID: 4, IP: "192.168.1.123", User: "Ana Oliveira", Threat: "Botnet - C&C Server", Category: "Botnet", Severity: "high", Time: "14:20:18", Date: "2024-07-02", Action: "blocked", Source: "External", Destination: "c2-server.evil", Port: "8080"},
	}
}

// Logs returns the security log entries.
func (s *DashboardService) Logs() []SecurityLog {
	return []SecurityLog{
		{ID: 1, Timestamp: "2024-07-02 14:32:15", Level: "critical", Category: "firewall", Message: "Unauthorized access attempt blocked", Source: "192.168.1.45", Destination: "192.168.1.1", Action: "blocked", Details: "SSH brute force attack detected from external IP"},
		{ID: 2, Timestamp: "2024-07-02 14:30:42", Level: "warning", Category: "intrusion", Message: "Suspicious traffic pattern detected", Source: "192.168.1.67", Destination: "external", Action: "monitored", Details: "Unusual outbound traffic pattern detected"},
		{ID: 3, Timestamp: "2024-07-02 14:28:33", Level: "info", Category: "authentication", Message: "Successful system login", Source: "192.168.1.89", Destination: "controller", Action: "allowed", Details: "User admin successfully authenticated"},
		{ID: 4, Timestamp: "2024-07-02 14:25:18", Level: "error", Category: "vpn", Message: "VPN connection failed", Source: "192.168.1.123", Destination: "vpn-server", Action: "failed", Details: "VPN connection failed due to certificate mismatch"},
		{ID: 5, Timestamp: "2024-07-02 14:22:07", Level: "warning", Category: "bandwidth", Message: "Bandwidth limit exceeded", Source: "192.168.1.156", Destination: "wan", Action: "throttled", Details: "User exceeded bandwidth quota, connection throttled"},
		{ID: 6, Timestamp: "2024-07-02 14:20:45", Level: "info", Category: "system", Message: "Automatic backup completed", Source: "system", Destination: "backup-server", Action: "completed", Details: "Daily configuration backup completed successfully"},
	}
}

// Devices returns the connected client report.
func (s *DashboardService) Devices() []ConnectedDevice {
	return []ConnectedDevice{
		{ID: 1, Name: "Joao Silva", Device: "iPhone 14", IP: "192.168.1.45", MAC: "aa:bb:cc:dd:ee:ff", Status: "online", Connected: "14:32", Duration: "2h 15m", Bandwidth: "45.2 MB/s", Location: "Meeting Room", Type: "smartphone"},
		{ID: 2, Name: "Maria Santos", Device: "MacBook Pro", IP: "192.168.1.67", MAC: "11:22:33:44:55:66", Status: "online", Connected: "09:15", Duration: "5h 47m", Bandwidth: "120.8 MB/s", Location: "Office", Type: "laptop"},
		{ID: 3, Name: "Pedro Costa", Device: "Samsung Galaxy", IP: "192.168.1.89", MAC: "77:88:99:aa:bb:cc", Status: "offline", Connected: "13:20", Duration: "45m", Bandwidth: "0 MB/s", Location: "Reception", Type: "smartphone"},
		{ID: 4, Name: "Ana Oliveira", Device: "Dell Laptop", IP: "192.168.1.123", MAC: "dd:ee:ff:00:11:22", Status: "online", Connected: "10:30", Duration: "4h 32m", Bandwidth: "78.5 MB/s", Location: "Lab", Type: "laptop"},
		{ID: 5, Name: "Carlos Lima", Device: "iPad Air", IP: "192.168.1.156", MAC: "33:44:55:66:77:88", Status: "online", Connected: "11:45", Duration: "3h 12m", Bandwidth: "22.1 MB/s", Location: "Office", Type: "tablet"},
	}
}
