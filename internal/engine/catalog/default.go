package catalog

import "github.com/hejijunhao/seclog/internal/model"

// DefaultPatterns returns the built-in pattern table that ships with seclog.
// Several codes appear under more than one pattern (7030, 7034, 7036, 4625,
// 4663, 4724, 2); Lookup resolves them to the earliest declaration.
func DefaultPatterns() []model.Pattern {
	return []model.Pattern{
		{Name: "Create Service", Codes: []uint32{7030, 7045}},
		{Name: "Create User", Codes: []uint32{4720, 4722, 4724, 4728}},
		{Name: "Add User to Group", Codes: []uint32{4732}},
		{Name: "Clear Event Log", Codes: []uint32{1102}},
		{Name: "Create RDP Certificate", Codes: []uint32{1056}},
		{
			Name: "Insert USB",
			Codes: []uint32{
				7030,  // device connected
				1006,  // device connection
				10000, // insertion seen by Device Manager
				10001, // device setup
				20001, // device installed
				20002, // device installed successfully
				20003, // device installed with additional setup
				24576, // insertion detected
				24577, // ready to use
				24578, // started
				24579, // fully operational
				6416,  // new external device recognized (advanced auditing)
				2100,  // device removal
				2101,  // device removal succeeded
				2102,  // device configured
				2103,  // device configured successfully
				2104,  // device removal failed
				4500,  // volume mount
				4501,  // volume unmount
				4663,  // access attempt on removable storage
				4727,  // insertion detected by security
				6418,  // device installed
				6423,  // removable device detected
			},
		},
		{Name: "Disable Firewall", Codes: []uint32{2003}},
		{Name: "Applocker", Codes: []uint32{8003, 8006, 8007}},
		{Name: "EMET", Codes: []uint32{2}},
		{Name: "Logon Failed", Codes: []uint32{4625}},
		{Name: "Service Terminated Unexpectedly", Codes: []uint32{7034}},
		{Name: "A service was installed in the system", Codes: []uint32{4697}},
		{Name: "User Account Locked Out", Codes: []uint32{4740}},
		{Name: "User Account Unlocked", Codes: []uint32{4767}},
		{Name: "File Access / Deletion", Codes: []uint32{4663, 4659, 4660}},
		{Name: "Terminal service session reconnected", Codes: []uint32{4778}},
		{Name: "Terminal service session disconnected", Codes: []uint32{4779}},
		{Name: "User Initiated Logoff", Codes: []uint32{4647}},
		{Name: "A directory service object was created", Codes: []uint32{5137}},
		{Name: "A directory service object was modified", Codes: []uint32{5136}},
		{Name: "Permission change with old & new attributes", Codes: []uint32{4670}},
		{Name: "Service Start Type Change (disable, manual, automatic)", Codes: []uint32{7040}},
		{Name: "Service Start / Stop", Codes: []uint32{7036}},
		{Name: "Restart Windows", Codes: []uint32{1076}},
		{Name: "Shutdown Windows", Codes: []uint32{1074}},
		{Name: "Logon Failure", Codes: []uint32{4625}},
		{Name: "Password Change", Codes: []uint32{4723, 4724}},
		{Name: "Account Disabled", Codes: []uint32{4725}},
		{Name: "Account Enabled", Codes: []uint32{4731}},
		{Name: "Access to Network Resource", Codes: []uint32{5140}},
		{Name: "Service Failure", Codes: []uint32{7031, 7034}},
		{Name: "Service Started", Codes: []uint32{7036}},
		{Name: "Program Installation", Codes: []uint32{19}},
		{Name: "Update Installation", Codes: []uint32{2}},
		{Name: "Security Policy Change", Codes: []uint32{4739}},
		{Name: "Firewall Block", Codes: []uint32{5152, 5153}},
		{Name: "Driver Installation", Codes: []uint32{6006}},
	}
}
