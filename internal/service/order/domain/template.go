package domain

// NewTemplate 返回业务员录入时使用的默认记录，订单号每次重新生成
func NewTemplate() *InsuranceData {
	d := &InsuranceData{
		OrderID: NewOrderID(),
		Status:  StatusPending,
		Proposer: Person{
			Name:    "张三",
			IDType:  "身份证",
			IDCard:  "110101199001011234",
			Mobile:  "13800138000",
			Address: "北京市朝阳区建国路88号",
		},
		Insured: Person{
			Name:    "张三",
			IDType:  "身份证",
			IDCard:  "110101199001011234",
			Mobile:  "13800138000",
			Address: "北京市朝阳区建国路88号",
		},
		Vehicle: Vehicle{
			Plate:        "京A88888",
			VIN:          "LFV...",
			EngineNo:     "123456",
			Brand:        "特斯拉 Model 3",
			VehicleOwner: "张三",
			RegisterDate: "2023-01-01",
			CurbWeight:   "1800KG",
			ApprovedLoad: "5人",
		},
		Project: Project{
			Region: "北京",
			Period: JoinPeriod("2024-05-20", "2025-05-19"),
			Coverages: []CoverageItem{
				{Name: "机动车损失保险", Amount: "300,000.00", Deductible: "/", Premium: "4,500.00"},
				{Name: "机动车第三者责任保险", Amount: "1,000,000.00", Deductible: "/", Premium: "10,833.84"},
			},
		},
		Payment: Payment{
			AlipayURL: "https://alipay.com/example",
			WechatURL: "https://wechat.com/example",
		},
	}
	d.RecomputePremium()
	return d
}
