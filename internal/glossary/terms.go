package glossary

// builtinTerms is the core catalog every build ships with. Categories group
// the terms for the glossary page filter.
var builtinTerms = []Term{
	{Term: "Call Option", Category: "basics",
		Definition: "A contract giving the holder the right, but not the obligation, to buy the underlying asset at the strike price on or before expiration."},
	{Term: "Put Option", Category: "basics",
		Definition: "A contract giving the holder the right, but not the obligation, to sell the underlying asset at the strike price on or before expiration."},
	{Term: "Strike Price", Category: "basics",
		Definition: "The fixed price at which the option holder may buy (call) or sell (put) the underlying asset. Also called the exercise price."},
	{Term: "Premium", Category: "basics",
		Definition: "The price paid by the buyer to the seller for the option contract. This is the maximum loss for a long position."},
	{Term: "Expiration Date", Category: "basics",
		Definition: "The date after which the option ceases to exist. Standard equity options expire on the third Friday of the contract month."},
	{Term: "Exercise", Category: "basics",
		Definition: "Using the right granted by the option: buying the underlying at the strike for a call, or selling it for a put."},
	{Term: "Assignment", Category: "basics",
		Definition: "The obligation placed on an option writer to fulfill the contract terms when the holder exercises."},
	{Term: "Writer", Category: "basics",
		Definition: "The seller of an option, who collects the premium and takes on the obligation to deliver (call) or take delivery (put) if assigned."},
	{Term: "Intrinsic Value", Category: "pricing",
		Definition: "The payoff an option would deliver if exercised immediately: max(S-K, 0) for a call, max(K-S, 0) for a put."},
	{Term: "Time Value", Category: "pricing",
		Definition: "The part of the premium above intrinsic value, reflecting the chance the option gains value before expiry. It decays to zero at expiration."},
	{Term: "In the Money", Category: "pricing",
		Definition: "An option with positive intrinsic value: spot above strike for calls, spot below strike for puts. Abbreviated ITM."},
	{Term: "At the Money", Category: "pricing",
		Definition: "An option whose strike is at or very near the current underlying price. Abbreviated ATM."},
	{Term: "Out of the Money", Category: "pricing",
		Definition: "An option with no intrinsic value: spot below strike for calls, spot above strike for puts. Abbreviated OTM."},
	{Term: "Volatility", Category: "pricing",
		Definition: "The annualized standard deviation of the underlying's returns. Higher volatility raises the value of both calls and puts."},
	{Term: "Implied Volatility", Category: "pricing",
		Definition: "The volatility that, plugged into the Black-Scholes formula, reproduces an option's market price. It is the market's forecast of future movement."},
	{Term: "Black-Scholes Model", Category: "pricing",
		Definition: "The standard closed-form model for pricing European options from the spot price, strike, risk-free rate, volatility and time to expiry."},
	{Term: "Put-Call Parity", Category: "pricing",
		Definition: "The no-arbitrage identity C - P = S - K*e^(-rT) linking European call and put prices with the same strike and expiry."},
	{Term: "Risk-Free Rate", Category: "pricing",
		Definition: "The return on a default-free investment over the option's life, used to discount the strike in pricing formulas."},
	{Term: "Delta", Category: "greeks",
		Definition: "The sensitivity of the option price to a one-unit move in the underlying. Calls have delta between 0 and 1, puts between -1 and 0."},
	{Term: "Gamma", Category: "greeks",
		Definition: "The rate of change of delta as the underlying moves. Largest for at-the-money options close to expiry."},
	{Term: "Theta", Category: "greeks",
		Definition: "The rate at which an option loses value as time passes, usually quoted per day. Long options have negative theta."},
	{Term: "Vega", Category: "greeks",
		Definition: "The sensitivity of the option price to a change in volatility. Both calls and puts gain value when volatility rises."},
	{Term: "Bull Spread", Category: "strategies",
		Definition: "Buying a call at a lower strike and selling a call at a higher strike. A limited-risk, limited-reward position for a moderately bullish view."},
	{Term: "Bear Spread", Category: "strategies",
		Definition: "Buying a put at a higher strike and selling a put at a lower strike. Profits from a moderate decline with limited risk."},
	{Term: "Straddle", Category: "strategies",
		Definition: "Buying a call and a put at the same strike and expiry. Profits from a large move in either direction; loses the combined premium if the price sits still."},
	{Term: "Strangle", Category: "strategies",
		Definition: "Buying an out-of-the-money put and an out-of-the-money call. Cheaper than a straddle but needs a larger move to profit."},
	{Term: "Butterfly Spread", Category: "strategies",
		Definition: "Buying one option at a low strike, selling two at a middle strike, and buying one at a high strike. Profits when the underlying finishes near the middle strike."},
	{Term: "Risk Reversal", Category: "strategies",
		Definition: "Selling an out-of-the-money put to fund an out-of-the-money call (or the reverse). Creates directional exposure at little or no upfront cost."},
	{Term: "Covered Call", Category: "strategies",
		Definition: "Selling a call against an existing holding of the underlying. The premium cushions small declines in exchange for capping the upside."},
	{Term: "Naked Option", Category: "strategies",
		Definition: "A short option position without an offsetting holding in the underlying. Naked calls carry unlimited risk."},
	{Term: "LEAPS", Category: "market",
		Definition: "Long-term Equity AnticiPation Securities: exchange-listed options with expirations longer than one year."},
	{Term: "Binary Option", Category: "market",
		Definition: "An option paying a fixed amount if it finishes in the money and nothing otherwise. Its payoff is an indicator function of the final price."},
}
