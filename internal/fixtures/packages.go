package fixtures

// TestPackagesCSV is a minimal package file without the status column.
const TestPackagesCSV = `package_id,delivery_guy,weight_kg,size_cm,sender_name,sender_address,receiver_name,receiver_address,label
PKG001,1,2.5,10x10x10,Alice,123 St,Bob,456 Ave,FRAGILE
PKG002,1,1.0,5x5x5,Charlie,789 Rd,Dave,101 Blvd,STANDARD
PKG003,2,5.0,20x20x20,Eve,202 Ln,Frank,303 Dr,URGENT
`

// TestPackagesStatusCSV is a package file with the status column populated.
const TestPackagesStatusCSV = `package_id,delivery_guy,weight_kg,size_cm,sender_name,sender_address,receiver_name,receiver_address,label,status
PKG001,1,2.5,10x10x10,Alice,123 St,Bob,456 Ave,FRAGILE,pending
PKG002,1,1.0,5x5x5,Charlie,789 Rd,Dave,101 Blvd,STANDARD,in_transit
PKG003,2,5.0,20x20x20,Eve,202 Ln,Frank,303 Dr,URGENT,delivered
`
