package main

import (
	"fmt"

	"gleipnir/internal/common"
	"gleipnir/internal/engine"
)

func printBest(side common.Side, quote common.Quote, ok bool) {
	fmt.Printf("Best %s: ", side)
	if !ok {
		fmt.Println("None")
		return
	}
	fmt.Printf("(%g, %d)\n", quote.Price, quote.Quantity)
}

func printDepth(side common.Side, depth []common.Quote) {
	fmt.Printf("Depth (%s): [", side)
	for i, quote := range depth {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("(%g, %d)", quote.Price, quote.Quantity)
	}
	fmt.Println("]")
}

func printTrades(trades []common.Trade) {
	fmt.Println("\nTrades:")
	for _, trade := range trades {
		fmt.Printf("  %s\n", trade)
	}
}

func place(book *engine.OrderBook, side common.Side, price float64, qty uint64) {
	if _, err := book.AddLimitOrder(side, price, qty); err != nil {
		panic(err)
	}
}

func main() {
	book := engine.New()

	// Resting orders.
	place(book, common.Sell, 101.0, 100)
	place(book, common.Sell, 102.0, 200)
	place(book, common.Buy, 99.0, 150)
	place(book, common.Buy, 98.0, 250)

	bid, bidOk := book.BestBid()
	printBest(common.Buy, bid, bidOk)
	ask, askOk := book.BestAsk()
	printBest(common.Sell, ask, askOk)
	printDepth(common.Buy, book.Depth(common.Buy, 10))
	printDepth(common.Sell, book.Depth(common.Sell, 10))

	// Aggressive buy that crosses the best ask.
	place(book, common.Buy, 102.0, 180)

	fmt.Println("\nAfter aggressive buy:")
	bid, bidOk = book.BestBid()
	printBest(common.Buy, bid, bidOk)
	ask, askOk = book.BestAsk()
	printBest(common.Sell, ask, askOk)

	printTrades(book.Trades())
}
