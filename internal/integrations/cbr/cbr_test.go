package cbr

import "testing"

const sampleResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
	<soap:Body>
		<KeyRateResponse>
			<KeyRateResult>
				<diffgram>
					<KeyRate>
						<KR><DT>2026-08-01T00:00:00</DT><Rate>16.00</Rate></KR>
						<KR><DT>2026-07-01T00:00:00</DT><Rate>18.00</Rate></KR>
					</KeyRate>
				</diffgram>
			</KeyRateResult>
		</KeyRateResponse>
	</soap:Body>
</soap:Envelope>`

func TestParseKeyRate(t *testing.T) {
	rate, err := parseKeyRate([]byte(sampleResponse))
	if err != nil {
		t.Fatal(err)
	}
	// The first KR entry is the most recent one.
	if rate != 16.00 {
		t.Fatalf("rate=%f want=16.00", rate)
	}
}

func TestParseKeyRateBadXML(t *testing.T) {
	if _, err := parseKeyRate([]byte("<unclosed")); err == nil {
		t.Fatal("want error for invalid XML")
	}
}

func TestParseKeyRateNoEntries(t *testing.T) {
	empty := `<?xml version="1.0"?><diffgram><KeyRate></KeyRate></diffgram>`
	if _, err := parseKeyRate([]byte(empty)); err == nil {
		t.Fatal("want error when no KR entries are present")
	}
}
