package demodata

import "fmt"

// CreatedBy tags every demo row so it can be found and removed later.
const CreatedBy = "DemoData"

type nowMarker struct{}

func (nowMarker) String() string { return "NOW()" }

// Now stands in for the database's current timestamp. Each dialect renders it
// with its own expression.
var Now = nowMarker{}

// IsNow reports whether v is the Now marker.
func IsNow(v interface{}) bool {
	_, ok := v.(nowMarker)
	return ok
}

// Dataset is the structured form of one INSERT statement.
type Dataset struct {
	Table        string
	Columns      []string
	Rows         [][]interface{}
	Dependencies []string
}

// Record returns row i keyed by column name.
func (d Dataset) Record(i int) map[string]interface{} {
	record := make(map[string]interface{}, len(d.Columns))
	for j, col := range d.Columns {
		record[col] = d.Rows[i][j]
	}
	return record
}

// Validate checks that every row has one value per column.
func (d Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("dataset %s has no columns", d.Table)
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Columns) {
			return fmt.Errorf("dataset %s row %d: %d values for %d columns", d.Table, i+1, len(row), len(d.Columns))
		}
	}
	return nil
}

// ColumnIndex returns the position of column name, or -1.
func (d Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Datasets returns the demo rows in print order.
func Datasets() []Dataset {
	return []Dataset{services(), parts(), suppliers()}
}

// Lookup finds the dataset for table.
func Lookup(table string) (Dataset, bool) {
	for _, d := range Datasets() {
		if d.Table == table {
			return d, true
		}
	}
	return Dataset{}, false
}

// TableNames returns the seeded tables in print order.
func TableNames() []string {
	ds := Datasets()
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Table)
	}
	return names
}

func services() Dataset {
	return Dataset{
		Table: "services",
		Columns: []string{
			"Name", "Description", "Price", "Duration", "Category",
			"ServiceTypeId", "LaborType", "SkillLevel", "LaborHours", "LaborRate", "TotalLaborCost",
			"RequiredTools", "RequiredSkills", "WorkInstructions", "IsActive", "IsDeleted", "CreatedAt", "CreatedBy",
		},
		Rows: [][]interface{}{
			{
				"[DEMO] Thay dầu động cơ", "Demo service", 500000, 60, "Bảo dưỡng",
				nil, "Maintenance", "Basic", 1, 100000, 100000,
				nil, nil, nil, 1, 0, Now, CreatedBy,
			},
			{
				"[DEMO] Kiểm tra tổng quát", "Demo inspection", 300000, 90, "Kiểm định",
				nil, "Inspection", "Basic", 2, 100000, 200000,
				nil, nil, nil, 1, 0, Now, CreatedBy,
			},
			{
				"[DEMO] Sửa phanh", "Demo brake repair", 1500000, 180, "Sửa chữa",
				nil, "Repair", "Intermediate", 3, 150000, 450000,
				nil, nil, nil, 1, 0, Now, CreatedBy,
			},
		},
	}
}

func parts() Dataset {
	part := func(number, name, desc, category string, cost, sell, qty, minStock, reorder int, unit string, warranty int) []interface{} {
		return []interface{}{
			number, name, desc, category, "Demo Brand",
			cost, cost, sell, qty, minStock, reorder,
			unit, nil, "K1-DEMO", "Purchased", "WithInvoice", 1,
			1, 1, 1, "New",
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, warranty, nil, 0,
			1, 0, Now, CreatedBy,
		}
	}

	return Dataset{
		Table: "parts",
		Columns: []string{
			"PartNumber", "PartName", "Description", "Category", "Brand",
			"CostPrice", "AverageCostPrice", "SellPrice", "QuantityInStock", "MinimumStock", "ReorderLevel",
			"Unit", "CompatibleVehicles", "Location", "SourceType", "InvoiceType", "HasInvoice",
			"CanUseForCompany", "CanUseForInsurance", "CanUseForIndividual", "Condition",
			"SourceReference", "PartGroupId", "OEMNumber", "AftermarketNumber", "Manufacturer",
			"Dimensions", "Weight", "Material", "Color", "WarrantyMonths", "WarrantyConditions", "IsOEM",
			"IsActive", "IsDeleted", "CreatedAt", "CreatedBy",
		},
		Rows: [][]interface{}{
			part("DEMO001", "[DEMO] Dầu nhớt Demo", "Demo oil", "Dầu nhớt", 350000, 450000, 100, 10, 15, "Lít", 12),
			part("DEMO002", "[DEMO] Lọc dầu Demo", "Demo filter", "Lọc", 100000, 150000, 100, 20, 30, "Cái", 6),
			part("DEMO003", "[DEMO] Má phanh Demo", "Demo brake pad", "Phanh", 600000, 800000, 50, 5, 10, "Bộ", 6),
		},
	}
}

func suppliers() Dataset {
	return Dataset{
		Table: "suppliers",
		Columns: []string{
			"SupplierName", "SupplierCode", "ContactPerson", "Phone", "ContactPhone", "Email", "Address",
			"City", "Country", "Website", "TaxCode", "BankAccount", "BankName", "PaymentTerms", "DeliveryTerms",
			"Notes", "IsOEMSupplier", "IsActive", "LastOrderDate", "TotalOrderValue", "Rating",
			"IsDeleted", "CreatedAt", "CreatedBy",
		},
		Rows: [][]interface{}{
			{
				"[DEMO] Phụ tùng Demo", "DEMO001", "Demo Contact", "0287777777", "0901111111", "demo@parts.com", "111 Demo Plaza",
				nil, nil, nil, "1234567890", "1234567890", "Demo Bank", nil, nil,
				"Demo supplier", 0, 1, nil, nil, 4.5,
				0, Now, CreatedBy,
			},
		},
	}
}
