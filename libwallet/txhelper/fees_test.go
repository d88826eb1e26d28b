package txhelper_test

import (
	. "github.com/crypto-power/fediwallet/libwallet/txhelper"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	"github.com/crypto-power/fediwallet/libwallet/values"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Fee details", func() {
	dc := utils.DisplayContext{Currency: "USD", Locale: "en", BtcUsdRate: 100000}

	It("totals the service and lightning fees of a payment", func() {
		tx := record(txtypes.KindLnPay, txtypes.LnPaySuccess{})
		tx.FeeStatus = &txtypes.FeeStatus{Type: txtypes.FeeSuccess, Fee: 10000}
		tx.LightningFees = 20000

		fees := MakeFeeDetails(tx, dc)
		Expect(fees.Items).To(HaveLen(2))
		Expect(fees.Items[0].LabelKey).To(Equal(values.StrServiceFee))
		Expect(fees.Items[0].Formatted).To(Equal("0.01 USD (10 SATS)"))
		Expect(fees.Items[1].LabelKey).To(Equal(values.StrLightningFee))
		Expect(fees.Total.LabelKey).To(Equal(values.StrTotalFees))
		Expect(utils.MsatToSat(fees.Total.Amount)).To(BeEquivalentTo(30))
		Expect(fees.Total.Formatted).To(Equal("0.03 USD (30 SATS)"))
	})

	It("skips the service fee until it is charged", func() {
		tx := record(txtypes.KindOOBReceive, plain(txtypes.StateDone))
		tx.FeeStatus = &txtypes.FeeStatus{Type: txtypes.FeePendingReceive, Fee: 10000}

		fees := MakeFeeDetails(tx, dc)
		Expect(fees.Items).To(BeEmpty())
		Expect(fees.HasFees()).To(BeFalse())
	})

	It("adds network fees to withdrawals and pool fees to completed deposits", func() {
		withdraw := record(txtypes.KindOnchainWithdraw, txtypes.OnchainWithdrawSucceeded{Txid: "aa"})
		withdraw.OnchainFees = 500000
		Expect(MakeFeeDetails(withdraw, dc).Items[0].LabelKey).To(Equal(values.StrNetworkFee))

		deposit := record(txtypes.KindSPDeposit, txtypes.SPDepositComplete{FeesPaidSoFar: 3000})
		deposit.FeeStatus = &txtypes.FeeStatus{Type: txtypes.FeePendingSend, Fee: 2000}
		fees := MakeFeeDetails(deposit, dc)
		Expect(fees.Items).To(HaveLen(2))
		Expect(utils.MsatToSat(fees.Total.Amount)).To(BeEquivalentTo(5))
	})

	It("formats the total as the sum of the displayed items", func() {
		tx := record(txtypes.KindLnPay, txtypes.LnPaySuccess{})
		tx.FeeStatus = &txtypes.FeeStatus{Type: txtypes.FeeSuccess, Fee: 10500}
		tx.LightningFees = 20500

		fees := MakeFeeDetails(tx, utils.DisplayContext{Locale: "en"})
		Expect(fees.Items[0].Formatted).To(Equal("10 SATS"))
		Expect(fees.Items[1].Formatted).To(Equal("20 SATS"))
		Expect(fees.Total.Formatted).To(Equal("30 SATS"))
		Expect(fees.Total.Amount).To(BeEquivalentTo(31000))
	})

	It("formats sats alone without a rate", func() {
		Expect(FormatFee(21000, utils.DisplayContext{Locale: "en"})).To(Equal("21 SATS"))
	})
})
