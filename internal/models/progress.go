package models

// ProgressTree is the fixed-shape checklist every deal owns. Trees are only
// ever built whole by EmptyProgressTree; leaves are replaced through the
// With* methods in progress_paths.go.
type ProgressTree struct {
	Contract   ContractProgress   `json:"contract"`
	Document   DocumentProgress   `json:"document"`
	Settlement SettlementProgress `json:"settlement"`
}

type ContractProgress struct {
	Seller SellerContractProgress `json:"seller"`
	Buyer  BuyerContractProgress  `json:"buyer"`
}

// SellerContractProgress covers the acquisition (AB) contract.
type SellerContractProgress struct {
	ContractSaved  CheckItem `json:"contract_saved"`
	ProxyCompleted CheckItem `json:"proxy_completed"`
	SellerIDSaved  CheckItem `json:"seller_id_saved"`
}

// BuyerContractProgress covers the resale (BC) contract and its disclosure statement.
type BuyerContractProgress struct {
	SalesContract    StagedCheckItem `json:"sales_contract"`
	ImportantMatters StagedCheckItem `json:"important_matters"`
}

type DocumentProgress struct {
	Rental     RentalDocuments     `json:"rental"`
	Building   BuildingDocuments   `json:"building"`
	Government GovernmentDocuments `json:"government"`
	Bank       BankDocuments       `json:"bank"`
}

type RentalDocuments struct {
	RentalContract     DocumentItem `json:"rental_contract"`
	ManagementContract DocumentItem `json:"management_contract"`
}

type BuildingDocuments struct {
	ImportantMatters DocumentItem `json:"important_matters"`
	ManagementRules  DocumentItem `json:"management_rules"`
	LongTermPlan     DocumentItem `json:"long_term_plan"`
	GeneralMeeting   DocumentItem `json:"general_meeting"`
}

type GovernmentDocuments struct {
	TaxCertificate DocumentItem `json:"tax_certificate"`
	BuildingPlan   DocumentItem `json:"building_plan"`
	RegistryRecord DocumentItem `json:"registry_record"`
	UseDistrict    DocumentItem `json:"use_district"`
	RoadLedger     DocumentItem `json:"road_ledger"`
}

type BankDocuments struct {
	LoanCalculation DocumentItem `json:"loan_calculation"`
}

type SettlementProgress struct {
	Statement      StatementProgress      `json:"statement"`
	Scrivener      ScrivenerProgress      `json:"scrivener"`
	MortgageBank   MortgageBankProgress   `json:"mortgage_bank"`
	PostSettlement PostSettlementProgress `json:"post_settlement"`
}

type StatementProgress struct {
	BuyerStatement       StagedCheckItem `json:"buyer_statement"`
	LoanCalculationSaved CheckItem       `json:"loan_calculation_saved"`
	SellerStatement      StagedCheckItem `json:"seller_statement"`
}

// ScrivenerProgress tracks the judicial scrivener handling registration.
type ScrivenerProgress struct {
	Requested          CheckItem `json:"requested"`
	DocumentsShared    CheckItem `json:"documents_shared"`
	IDDocumentSent     CheckItem `json:"id_document_sent"`
	IDDocumentReceived CheckItem `json:"id_document_received"`
	IDDocumentReturned CheckItem `json:"id_document_returned"`
	NoDefects          CheckItem `json:"no_defects"`
}

type MortgageBankProgress struct {
	Requested              CheckItem `json:"requested"`
	Accepted               CheckItem `json:"accepted"`
	NoDefects              CheckItem `json:"no_defects"`
	LoanCalculationSaved   CheckItem `json:"loan_calculation_saved"`
	SellerPaymentCompleted CheckItem `json:"seller_payment_completed"`
}

type PostSettlementProgress struct {
	ManagementCancellationRequested CheckItem `json:"management_cancellation_requested"`
	ManagementCancellationCompleted CheckItem `json:"management_cancellation_completed"`
	GuaranteeSuccessionRequested    CheckItem `json:"guarantee_succession_requested"`
	GuaranteeSuccessionCompleted    CheckItem `json:"guarantee_succession_completed"`
	KeyReceived                     CheckItem `json:"key_received"`
	KeySent                         CheckItem `json:"key_sent"`
	AccountTransferReceived         CheckItem `json:"account_transfer_received"`
	AccountTransferSent             CheckItem `json:"account_transfer_sent"`
	TransactionLedger               CheckItem `json:"transaction_ledger"`
}

func EmptyProgressTree() ProgressTree {
	c := EmptyCheckItem
	d := EmptyDocumentItem
	s := EmptyStagedProgress
	return ProgressTree{
		Contract: ContractProgress{
			Seller: SellerContractProgress{ContractSaved: c(), ProxyCompleted: c(), SellerIDSaved: c()},
			Buyer:  BuyerContractProgress{SalesContract: s(), ImportantMatters: s()},
		},
		Document: DocumentProgress{
			Rental: RentalDocuments{RentalContract: d(), ManagementContract: d()},
			Building: BuildingDocuments{
				ImportantMatters: d(), ManagementRules: d(), LongTermPlan: d(), GeneralMeeting: d(),
			},
			Government: GovernmentDocuments{
				TaxCertificate: d(), BuildingPlan: d(), RegistryRecord: d(), UseDistrict: d(), RoadLedger: d(),
			},
			Bank: BankDocuments{LoanCalculation: d()},
		},
		Settlement: SettlementProgress{
			Statement: StatementProgress{BuyerStatement: s(), LoanCalculationSaved: c(), SellerStatement: s()},
			Scrivener: ScrivenerProgress{
				Requested: c(), DocumentsShared: c(), IDDocumentSent: c(),
				IDDocumentReceived: c(), IDDocumentReturned: c(), NoDefects: c(),
			},
			MortgageBank: MortgageBankProgress{
				Requested: c(), Accepted: c(), NoDefects: c(), LoanCalculationSaved: c(), SellerPaymentCompleted: c(),
			},
			PostSettlement: PostSettlementProgress{
				ManagementCancellationRequested: c(), ManagementCancellationCompleted: c(),
				GuaranteeSuccessionRequested: c(), GuaranteeSuccessionCompleted: c(),
				KeyReceived: c(), KeySent: c(),
				AccountTransferReceived: c(), AccountTransferSent: c(),
				TransactionLedger: c(),
			},
		},
	}
}
