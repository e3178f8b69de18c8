package domain

// MergePerson 将识别结果逐字段合并到 dst，只有非空字段会覆盖原值
func MergePerson(dst Person, src Person) Person {
	dst.Name = pick(dst.Name, src.Name)
	dst.IDType = pick(dst.IDType, src.IDType)
	dst.IDCard = pick(dst.IDCard, src.IDCard)
	dst.Mobile = pick(dst.Mobile, src.Mobile)
	dst.Address = pick(dst.Address, src.Address)
	return dst
}

// MergeVehicle 同 MergePerson，作用于车辆信息
func MergeVehicle(dst Vehicle, src Vehicle) Vehicle {
	dst.Plate = pick(dst.Plate, src.Plate)
	dst.VIN = pick(dst.VIN, src.VIN)
	dst.EngineNo = pick(dst.EngineNo, src.EngineNo)
	dst.Brand = pick(dst.Brand, src.Brand)
	dst.VehicleOwner = pick(dst.VehicleOwner, src.VehicleOwner)
	dst.RegisterDate = pick(dst.RegisterDate, src.RegisterDate)
	dst.CurbWeight = pick(dst.CurbWeight, src.CurbWeight)
	dst.ApprovedLoad = pick(dst.ApprovedLoad, src.ApprovedLoad)
	return dst
}

func pick(current, incoming string) string {
	if incoming != "" {
		return incoming
	}
	return current
}
