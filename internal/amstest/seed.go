package amstest

// SeedDemo loads a small consistent data set across every collection the
// console's views consume. Ids are fixed so the demo URLs stay stable.
func SeedDemo(s *Server) {
	s.Seed("locations",
		map[string]interface{}{"id": int64(1), "name": "HQ / Floor 1"},
		map[string]interface{}{"id": int64(2), "name": "HQ / Floor 2"},
		map[string]interface{}{"id": int64(3), "name": "Warehouse"},
	)
	s.Seed("suppliers",
		map[string]interface{}{"id": int64(11), "name": "Northwind Supplies"},
		map[string]interface{}{"id": int64(12), "name": "Contoso Hardware"},
	)
	s.Seed("categories",
		map[string]interface{}{"id": int64(21), "name": "IT Equipment"},
		map[string]interface{}{"id": int64(22), "name": "Office Furniture"},
	)
	s.Seed("invoices",
		map[string]interface{}{"id": int64(31), "invoiceNumber": "INV-2026-0031"},
		map[string]interface{}{"id": int64(32), "invoiceNumber": "INV-2026-0032"},
	)
	s.Seed("owners",
		map[string]interface{}{"id": int64(41), "name": "Finance Department"},
		map[string]interface{}{"id": int64(42), "name": "Engineering"},
	)
	s.Seed("asset-types",
		map[string]interface{}{"id": int64(51), "name": "Laptop", "categoryId": int64(21)},
		map[string]interface{}{"id": int64(52), "name": "Desk", "categoryId": int64(22)},
		map[string]interface{}{"id": int64(53), "name": "Monitor", "categoryId": int64(21)},
	)
	s.Seed("assets",
		map[string]interface{}{
			"id": int64(101), "name": "ThinkPad T14", "serialNumber": "SN-T14-001",
			"hasWarranty": true, "supplierId": int64(11), "locationId": int64(1),
			"assetTypeId": int64(51), "invoiceId": int64(31),
		},
		map[string]interface{}{
			"id": int64(102), "name": "Dell U2720Q", "serialNumber": "SN-MON-014",
			"hasWarranty": false, "supplierId": int64(12), "locationId": int64(2),
			"assetTypeId": int64(53), "invoiceId": int64(32),
		},
		map[string]interface{}{
			"id": int64(103), "name": "Standing Desk", "serialNumber": "SN-DSK-007",
			"hasWarranty": false, "supplierId": int64(12), "locationId": int64(3),
			"assetTypeId": int64(52),
		},
	)
	s.Require("asset-statuses", "status")
	s.Seed("asset-statuses",
		map[string]interface{}{"id": int64(201), "status": "In Use", "assetId": int64(101)},
		map[string]interface{}{"id": int64(202), "status": "In Storage", "assetId": int64(103)},
	)
	s.Seed("asset-status-histories",
		map[string]interface{}{"id": int64(301), "name": "Received", "assetId": int64(101)},
		map[string]interface{}{"id": int64(302), "name": "Deployed", "assetId": int64(101)},
	)
	s.Seed("asset-ownerships",
		map[string]interface{}{"id": int64(401), "name": "Primary ownership", "assetId": int64(101), "ownerId": int64(42)},
	)
	s.Seed("maintainer-types",
		map[string]interface{}{"id": int64(61), "name": "Internal"},
		map[string]interface{}{"id": int64(62), "name": "Vendor"},
	)
	s.Seed("maintainers",
		map[string]interface{}{"id": int64(501), "name": "Alex Mason", "email": "alex@example.com", "maintainerTypeId": int64(61)},
		map[string]interface{}{"id": int64(502), "name": "Contoso Service Desk", "phone": "+1-555-0100", "maintainerTypeId": int64(62)},
	)
	s.Seed("maintenance-records",
		map[string]interface{}{"id": int64(601), "name": "Battery replacement", "assetId": int64(101), "maintainerId": int64(501)},
	)
	s.Seed("maintenance-parts",
		map[string]interface{}{"id": int64(701), "name": "57Wh battery", "maintenanceRecordId": int64(601)},
	)
	s.Seed("temporary-users",
		map[string]interface{}{"id": int64(801), "name": "Visiting Auditor", "description": "Q3 audit"},
	)
	s.Seed("temporary-used-records",
		map[string]interface{}{"id": int64(901), "name": "Loaner laptop", "assetId": int64(102), "temporaryUserId": int64(801)},
	)
	s.Seed("temporary-used-requests",
		map[string]interface{}{"id": int64(1001), "name": "Extend loan", "temporaryUsedRecordId": int64(901), "assetId": int64(102)},
	)
}
