package txhelper_test

import (
	. "github.com/crypto-power/fediwallet/libwallet/txhelper"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/values"
	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func record(kind txtypes.Kind, state txtypes.State) *txtypes.Transaction {
	return &txtypes.Transaction{ID: "tx", Kind: kind, State: state, Amount: 1000000}
}

func plain(tag txtypes.StateType) txtypes.State {
	return txtypes.PlainState(tag)
}

var _ = Describe("Classifier", func() {
	Describe("TxDirection", func() {
		table.DescribeTable("send kinds",
			func(kind txtypes.Kind, want int32) {
				Expect(TxDirection(kind)).To(Equal(want))
			},
			table.Entry("lightning pay", txtypes.KindLnPay, TxDirectionSent),
			table.Entry("onchain withdraw", txtypes.KindOnchainWithdraw, TxDirectionSent),
			table.Entry("ecash send", txtypes.KindOOBSend, TxDirectionSent),
			table.Entry("stability deposit", txtypes.KindSPDeposit, TxDirectionSent),
			table.Entry("stability v2 deposit", txtypes.KindSPV2Deposit, TxDirectionSent),
			table.Entry("transfer out", txtypes.KindSPV2TransferOut, TxDirectionSent),
			table.Entry("multispend withdrawal", txtypes.KindMultispendWithdrawal, TxDirectionSent),
			table.Entry("lightning receive", txtypes.KindLnReceive, TxDirectionReceived),
			table.Entry("stability withdraw", txtypes.KindSPWithdraw, TxDirectionReceived),
			table.Entry("multispend deposit", txtypes.KindMultispendDeposit, TxDirectionReceived),
			table.Entry("unknown kind", txtypes.Kind("teleport"), TxDirectionReceived),
		)
	})

	Describe("status", func() {
		table.DescribeTable("badge and label",
			func(tx *txtypes.Transaction, badge Badge, key string) {
				Expect(StatusBadge(tx)).To(Equal(badge))
				Expect(StatusKey(tx, StatusContext{})).To(Equal(key))
			},
			table.Entry("lightning payment success", record(txtypes.KindLnPay, txtypes.LnPaySuccess{Preimage: "p"}), BadgeOutgoing, values.StrSent),
			table.Entry("lightning payment refunded", record(txtypes.KindLnPay, txtypes.LnPayRefunded{}), BadgeFailed, values.StrRefunded),
			table.Entry("lightning payment in flight", record(txtypes.KindLnPay, plain(txtypes.StateFunded)), BadgePending, values.StrPending),
			table.Entry("invoice expired", record(txtypes.KindLnReceive, txtypes.LnReceiveCanceled{}), BadgeExpired, values.StrExpired),
			table.Entry("invoice claimed", record(txtypes.KindLnReceive, plain(txtypes.StateClaimed)), BadgeIncoming, values.StrReceived),
			table.Entry("recurring receive created", record(txtypes.KindLnRecurringdReceive, plain(txtypes.StateCreated)), BadgePending, values.StrReceived),
			table.Entry("deposit seen", record(txtypes.KindOnchainDeposit, txtypes.OnchainDepositWaitingForConfirmation{}), BadgePending, values.StrSeen),
			table.Entry("ecash cancel failed", record(txtypes.KindOOBSend, plain(txtypes.StateUserCanceledFailure)), BadgeOutgoing, values.StrSent),
			table.Entry("v1 deposit complete", record(txtypes.KindSPDeposit, txtypes.SPDepositComplete{}), BadgeOutgoing, values.StrDeposit),
			table.Entry("v1 deposit not cached", record(txtypes.KindSPDeposit, plain(txtypes.StateDataNotInCache)), BadgeFailed, values.StrUnknown),
			table.Entry("v2 withdrawal failed", record(txtypes.KindSPV2Withdrawal, txtypes.SPV2WithdrawalFailed{}), BadgeFailed, values.StrFailed),
			table.Entry("unknown state", record(txtypes.KindOnchainWithdraw, txtypes.UnknownState{Type: "teleported"}), BadgePending, values.StrUnknown),
			table.Entry("no state", record(txtypes.KindOnchainWithdraw, nil), BadgePending, values.StrUnknown),
		)

		It("words completed stability pool records differently for exports", func() {
			tx := record(txtypes.KindSPV2Withdrawal, txtypes.SPV2WithdrawalCompleted{})
			Expect(StatusKey(tx, StatusContext{})).To(Equal(values.StrWithdrawal))
			Expect(StatusKey(tx, StatusContext{Export: true})).To(Equal(values.StrComplete))

			tx = record(txtypes.KindLnPay, txtypes.LnPaySuccess{})
			Expect(StatusKey(tx, StatusContext{Export: true})).To(Equal(values.StrSent))
		})

		It("maps every known state of every kind to a badge", func() {
			valid := []Badge{BadgeIncoming, BadgeOutgoing, BadgePending, BadgeFailed, BadgeExpired}
			for _, kind := range txtypes.Kinds {
				for _, tag := range txtypes.KindStates(kind) {
					tx := record(kind, plain(tag))
					Expect(valid).To(ContainElement(StatusBadge(tx)), string(kind)+"/"+string(tag))
					Expect(StatusKey(tx, StatusContext{})).ToNot(BeEmpty())
				}
			}
		})

		It("hides retry only for v1 stability pool records missing from the cache", func() {
			Expect(ShowRetry(record(txtypes.KindSPDeposit, plain(txtypes.StateDataNotInCache)))).To(BeFalse())
			Expect(ShowRetry(record(txtypes.KindSPWithdraw, plain(txtypes.StateDataNotInCache)))).To(BeFalse())
			Expect(ShowRetry(record(txtypes.KindSPV2Deposit, plain(txtypes.StateDataNotInCache)))).To(BeTrue())
			Expect(ShowRetry(record(txtypes.KindOnchainWithdraw, txtypes.OnchainWithdrawFailed{}))).To(BeTrue())
			Expect(ShowRetry(record(txtypes.KindLnPay, plain(txtypes.StateCreated)))).To(BeFalse())
		})
	})

	Describe("AmountSign", func() {
		It("signs by direction", func() {
			Expect(AmountSign(record(txtypes.KindLnPay, txtypes.LnPaySuccess{}), false)).To(Equal(SignMinus))
			Expect(AmountSign(record(txtypes.KindOOBReceive, plain(txtypes.StateDone)), false)).To(Equal(SignPlus))
		})

		It("marks a deposit address without a transaction as uncertain", func() {
			tx := record(txtypes.KindOnchainDeposit, plain(txtypes.StateWaitingForTransaction))
			Expect(AmountSign(tx, false)).To(Equal(SignUncertain))
		})

		It("drops the sign of canceled lightning records", func() {
			Expect(AmountSign(record(txtypes.KindLnPay, plain(txtypes.StateCanceled)), false)).To(BeEmpty())
			Expect(AmountSign(record(txtypes.KindLnReceive, txtypes.LnReceiveCanceled{}), false)).To(BeEmpty())
			Expect(AmountSign(record(txtypes.KindOOBSend, plain(txtypes.StateCanceled)), false)).To(Equal(SignMinus))
		})

		It("flips every kind except transfers", func() {
			Expect(AmountSign(record(txtypes.KindLnPay, txtypes.LnPaySuccess{}), true)).To(Equal(SignPlus))
			Expect(AmountSign(record(txtypes.KindSPV2TransferOut, txtypes.SPV2TransferOutCompleted{}), true)).To(Equal(SignMinus))
			Expect(AmountSign(record(txtypes.KindSPV2TransferIn, txtypes.SPV2TransferInCompleted{}), true)).To(Equal(SignPlus))
		})
	})

	Describe("ClassifyMultispend", func() {
		withdrawal := func(status txtypes.SubmissionStatusType) *txtypes.MultispendTransaction {
			return &txtypes.MultispendTransaction{
				State: txtypes.MultispendWithdrawal,
				Withdrawal: &txtypes.MultispendWithdrawalEvent{
					TxSubmissionStatus: txtypes.SubmissionStatus{Type: status},
				},
			}
		}

		It("follows the withdrawal submission status", func() {
			Expect(ClassifyMultispend(withdrawal(txtypes.SubmissionUnknown), StatusContext{}).Badge).To(Equal(BadgePending))
			Expect(ClassifyMultispend(withdrawal(txtypes.SubmissionAccepted), StatusContext{}).Badge).To(Equal(BadgeOutgoing))
			Expect(ClassifyMultispend(withdrawal(txtypes.SubmissionRejected), StatusContext{}).Badge).To(Equal(BadgeFailed))
		})

		It("treats deposits as incoming and other events as pending", func() {
			deposit := &txtypes.MultispendTransaction{State: txtypes.MultispendDeposit, Deposit: &txtypes.MultispendDepositEvent{}}
			Expect(ClassifyMultispend(deposit, StatusContext{}).Badge).To(Equal(BadgeIncoming))

			invite := &txtypes.MultispendTransaction{State: txtypes.MultispendGroupInvitation}
			c := ClassifyMultispend(invite, StatusContext{})
			Expect(c.Badge).To(Equal(BadgePending))
			Expect(c.StatusKey).To(Equal(values.StrGroupInvitation))
		})
	})
})
